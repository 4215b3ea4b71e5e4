package modelstore

import (
	"bytes"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/urbanmobility/analytics-backend-go/internal/models"
)

// blobRef is the tagged location of a serialized regressor: either inline
// bytes carried in the model document or a reference into GridFS. Exactly
// one side is set.
type blobRef struct {
	inline []byte
	fileID *primitive.ObjectID
}

func blobRefFromDoc(doc models.ModelDocument) blobRef {
	if doc.ModelFileID != nil {
		return blobRef{fileID: doc.ModelFileID}
	}
	return blobRef{inline: doc.ModelBlob}
}

// resolve fetches the regressor bytes for either variant.
func (s *Store) resolve(ctx context.Context, ref blobRef) ([]byte, error) {
	if ref.fileID == nil {
		if len(ref.inline) == 0 {
			return nil, fmt.Errorf("model document has neither file id nor inline blob")
		}
		return ref.inline, nil
	}

	var buf bytes.Buffer
	if _, err := s.bucket.DownloadToStream(*ref.fileID, &buf); err != nil {
		return nil, fmt.Errorf("failed to download regressor from gridfs: %w", err)
	}
	return buf.Bytes(), nil
}
