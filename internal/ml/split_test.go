package ml

import "testing"

func makeRows(n int) ([][]float64, []float64) {
	X := make([][]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		X[i] = []float64{float64(i)}
		y[i] = float64(i)
	}
	return X, y
}

func TestTrainTestSplitSizes(t *testing.T) {
	X, y := makeRows(100)
	XTrain, XTest, yTrain, yTest, err := TrainTestSplit(X, y, 0.2, 42)
	if err != nil {
		t.Fatal(err)
	}
	if len(XTest) != 20 || len(yTest) != 20 {
		t.Errorf("test partition size = %d, want 20", len(XTest))
	}
	if len(XTrain) != 80 || len(yTrain) != 80 {
		t.Errorf("train partition size = %d, want 80", len(XTrain))
	}
}

func TestTrainTestSplitDeterministic(t *testing.T) {
	X, y := makeRows(50)
	_, test1, _, _, err := TrainTestSplit(X, y, 0.3, 42)
	if err != nil {
		t.Fatal(err)
	}
	_, test2, _, _, err := TrainTestSplit(X, y, 0.3, 42)
	if err != nil {
		t.Fatal(err)
	}

	for i := range test1 {
		if test1[i][0] != test2[i][0] {
			t.Fatalf("same seed produced different membership at %d: %v vs %v", i, test1[i][0], test2[i][0])
		}
	}

	_, test3, _, _, err := TrainTestSplit(X, y, 0.3, 7)
	if err != nil {
		t.Fatal(err)
	}
	same := true
	for i := range test1 {
		if test1[i][0] != test3[i][0] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical membership")
	}
}

func TestTrainTestSplitPartitionsAllRows(t *testing.T) {
	X, y := makeRows(17)
	XTrain, XTest, _, _, err := TrainTestSplit(X, y, 0.25, 1)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[float64]bool)
	for _, r := range XTrain {
		seen[r[0]] = true
	}
	for _, r := range XTest {
		if seen[r[0]] {
			t.Fatalf("row %v in both partitions", r[0])
		}
		seen[r[0]] = true
	}
	if len(seen) != 17 {
		t.Errorf("partitions cover %d rows, want 17", len(seen))
	}
}

func TestTrainTestSplitInvalidFraction(t *testing.T) {
	X, y := makeRows(10)
	for _, size := range []float64{0, 1, -0.5, 1.5} {
		if _, _, _, _, err := TrainTestSplit(X, y, size, 42); err == nil {
			t.Errorf("test size %v should be rejected", size)
		}
	}
}

func TestSubsample(t *testing.T) {
	X, y := makeRows(100)

	sx, sy := Subsample(X, y, 10, 42)
	if len(sx) != 10 || len(sy) != 10 {
		t.Fatalf("subsample size = %d, want 10", len(sx))
	}

	sx2, _ := Subsample(X, y, 10, 42)
	for i := range sx {
		if sx[i][0] != sx2[i][0] {
			t.Fatal("subsample not deterministic for fixed seed")
		}
	}

	same, _ := Subsample(X, y, 0, 42)
	if len(same) != 100 {
		t.Errorf("size 0 should keep all rows, got %d", len(same))
	}
	same, _ = Subsample(X, y, 200, 42)
	if len(same) != 100 {
		t.Errorf("oversized cap should keep all rows, got %d", len(same))
	}
}
