package ml

import "sort"

// Node is one node of a regression tree. Fields are exported so trained
// trees can be gob-encoded.
type Node struct {
	Leaf      bool
	Value     float64
	Feature   int
	Threshold float64
	Left      *Node
	Right     *Node
}

// Tree is a single CART regression tree trained on variance reduction.
type Tree struct {
	Root     *Node
	MaxDepth int
	MinLeaf  int
}

func newTree(maxDepth, minLeaf int) *Tree {
	return &Tree{MaxDepth: maxDepth, MinLeaf: minLeaf}
}

// fit grows the tree on the rows selected by idx.
func (t *Tree) fit(X [][]float64, y []float64, idx []int) {
	t.Root = t.grow(X, y, idx, 0)
}

func (t *Tree) grow(X [][]float64, y []float64, idx []int, depth int) *Node {
	if len(idx) <= t.MinLeaf || depth >= t.MaxDepth {
		return &Node{Leaf: true, Value: meanAt(y, idx)}
	}

	feature, threshold, ok := bestSplit(X, y, idx, t.MinLeaf)
	if !ok {
		return &Node{Leaf: true, Value: meanAt(y, idx)}
	}

	var left, right []int
	for _, i := range idx {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &Node{Leaf: true, Value: meanAt(y, idx)}
	}

	return &Node{
		Feature:   feature,
		Threshold: threshold,
		Left:      t.grow(X, y, left, depth+1),
		Right:     t.grow(X, y, right, depth+1),
	}
}

// predict walks the tree for one input row.
func (t *Tree) predict(x []float64) float64 {
	node := t.Root
	for !node.Leaf {
		if x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Value
}

// bestSplit finds the feature/threshold pair with the largest reduction in
// sum of squared errors. It scans each feature in sorted order using prefix
// sums, splitting between adjacent distinct values.
func bestSplit(X [][]float64, y []float64, idx []int, minLeaf int) (int, float64, bool) {
	n := len(idx)
	if n < 2*minLeaf {
		return 0, 0, false
	}
	nFeatures := len(X[idx[0]])

	var totalSum, totalSq float64
	for _, i := range idx {
		totalSum += y[i]
		totalSq += y[i] * y[i]
	}
	baseSSE := totalSq - totalSum*totalSum/float64(n)

	bestGain := 0.0
	bestFeature, bestThreshold := -1, 0.0

	sorted := make([]int, n)
	for feature := 0; feature < nFeatures; feature++ {
		copy(sorted, idx)
		sort.Slice(sorted, func(a, b int) bool {
			return X[sorted[a]][feature] < X[sorted[b]][feature]
		})

		var leftSum, leftSq float64
		for pos := 0; pos < n-1; pos++ {
			i := sorted[pos]
			leftSum += y[i]
			leftSq += y[i] * y[i]

			v, next := X[i][feature], X[sorted[pos+1]][feature]
			if v == next {
				continue
			}
			nLeft := pos + 1
			nRight := n - nLeft
			if nLeft < minLeaf || nRight < minLeaf {
				continue
			}

			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			sse := (leftSq - leftSum*leftSum/float64(nLeft)) +
				(rightSq - rightSum*rightSum/float64(nRight))

			gain := baseSSE - sse
			if gain > bestGain {
				bestGain = gain
				bestFeature = feature
				bestThreshold = (v + next) / 2
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

func meanAt(y []float64, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	var sum float64
	for _, i := range idx {
		sum += y[i]
	}
	return sum / float64(len(idx))
}
