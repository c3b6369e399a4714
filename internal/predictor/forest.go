package predictor

import (
	"math"
	"math/rand"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// treeNode is one node of a fitted decision tree, stored flat so the
// whole tree serializes as a slice. Leaves carry the class
// distribution of the training samples that reached them.
type treeNode struct {
	Leaf      bool      `json:"leaf"`
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      int       `json:"left,omitempty"`
	Right     int       `json:"right,omitempty"`
	Proba     []float64 `json:"proba,omitempty"`
}

type decisionTree struct {
	Nodes []treeNode `json:"nodes"`
}

func (t decisionTree) proba(x []float64) []float64 {
	i := 0
	for {
		node := t.Nodes[i]
		if node.Leaf {
			return node.Proba
		}
		if x[node.Feature] <= node.Threshold {
			i = node.Left
		} else {
			i = node.Right
		}
	}
}

// Forest is a random-forest classifier over dense vectors: bootstrap
// sampling per tree, gini splits over a sqrt-sized feature subset,
// class probabilities averaged across trees.
type Forest struct {
	NumTrees int            `json:"num_trees"`
	Classes  int            `json:"classes"`
	Seed     int64          `json:"seed"`
	Trees    []decisionTree `json:"trees"`
}

const (
	defaultTrees = 200
	defaultSeed  = 42
)

// fitForest trains the trees on an ants pool. Each tree seeds its own
// rng from the forest seed and its index, so a fit is reproducible
// regardless of worker count.
func fitForest(x [][]float64, y []int, classes, numTrees int, seed int64, workers int) (Forest, error) {
	forest := Forest{
		NumTrees: numTrees,
		Classes:  classes,
		Seed:     seed,
		Trees:    make([]decisionTree, numTrees),
	}
	if len(x) == 0 {
		forest.Trees = nil
		return forest, nil
	}

	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return Forest{}, err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := 0; i < numTrees; i++ {
		i := i
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed + int64(i)))
			sample := bootstrapSample(len(x), rng)
			forest.Trees[i] = growTree(x, y, sample, classes, rng)
		})
		if submitErr != nil {
			wg.Done()
			wg.Wait()
			return Forest{}, submitErr
		}
	}
	wg.Wait()
	return forest, nil
}

// PredictProba averages the per-tree leaf distributions.
func (f Forest) PredictProba(x []float64) []float64 {
	proba := make([]float64, f.Classes)
	if len(f.Trees) == 0 {
		return proba
	}
	for _, tree := range f.Trees {
		for class, p := range tree.proba(x) {
			proba[class] += p
		}
	}
	for class := range proba {
		proba[class] /= float64(len(f.Trees))
	}
	return proba
}

func bootstrapSample(n int, rng *rand.Rand) []int {
	sample := make([]int, n)
	for i := range sample {
		sample[i] = rng.Intn(n)
	}
	return sample
}

type treeBuilder struct {
	x           [][]float64
	y           []int
	classes     int
	maxFeatures int
	rng         *rand.Rand
	nodes       []treeNode
}

func growTree(x [][]float64, y []int, sample []int, classes int, rng *rand.Rand) decisionTree {
	b := &treeBuilder{
		x:           x,
		y:           y,
		classes:     classes,
		maxFeatures: int(math.Max(1, math.Sqrt(float64(len(x[0]))))),
		rng:         rng,
	}
	b.grow(sample)
	return decisionTree{Nodes: b.nodes}
}

// grow appends the subtree for the given sample and returns its root
// index.
func (b *treeBuilder) grow(sample []int) int {
	counts := make([]float64, b.classes)
	for _, i := range sample {
		counts[b.y[i]]++
	}

	feature, threshold, ok := b.bestSplit(sample, counts)
	if !ok {
		return b.leaf(counts)
	}

	var left, right []int
	for _, i := range sample {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return b.leaf(counts)
	}

	index := len(b.nodes)
	b.nodes = append(b.nodes, treeNode{Feature: feature, Threshold: threshold})
	leftIndex := b.grow(left)
	rightIndex := b.grow(right)
	b.nodes[index].Left = leftIndex
	b.nodes[index].Right = rightIndex
	return index
}

func (b *treeBuilder) leaf(counts []float64) int {
	total := 0.0
	for _, c := range counts {
		total += c
	}
	proba := make([]float64, len(counts))
	if total > 0 {
		for class, c := range counts {
			proba[class] = c / total
		}
	}
	index := len(b.nodes)
	b.nodes = append(b.nodes, treeNode{Leaf: true, Proba: proba})
	return index
}

// bestSplit scans a random sqrt-sized subset of features for the
// threshold with the lowest weighted gini impurity.
func (b *treeBuilder) bestSplit(sample []int, counts []float64) (feature int, threshold float64, ok bool) {
	if len(sample) < 2 || isPure(counts) {
		return 0, 0, false
	}

	featureCount := len(b.x[0])
	candidates := b.rng.Perm(featureCount)[:b.maxFeatures]

	bestGini := math.Inf(1)
	values := make([]float64, len(sample))
	for _, f := range candidates {
		for i, idx := range sample {
			values[i] = b.x[idx][f]
		}
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)

		prev := sorted[0]
		for _, v := range sorted[1:] {
			if v == prev {
				continue
			}
			t := (prev + v) / 2
			prev = v
			if gini := b.splitGini(sample, f, t); gini < bestGini {
				bestGini = gini
				feature = f
				threshold = t
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func (b *treeBuilder) splitGini(sample []int, feature int, threshold float64) float64 {
	leftCounts := make([]float64, b.classes)
	rightCounts := make([]float64, b.classes)
	leftTotal, rightTotal := 0.0, 0.0
	for _, i := range sample {
		if b.x[i][feature] <= threshold {
			leftCounts[b.y[i]]++
			leftTotal++
		} else {
			rightCounts[b.y[i]]++
			rightTotal++
		}
	}
	total := leftTotal + rightTotal
	return leftTotal/total*gini(leftCounts, leftTotal) + rightTotal/total*gini(rightCounts, rightTotal)
}

func gini(counts []float64, total float64) float64 {
	if total == 0 {
		return 0
	}
	impurity := 1.0
	for _, c := range counts {
		p := c / total
		impurity -= p * p
	}
	return impurity
}

func isPure(counts []float64) bool {
	seen := false
	for _, c := range counts {
		if c == 0 {
			continue
		}
		if seen {
			return false
		}
		seen = true
	}
	return true
}
