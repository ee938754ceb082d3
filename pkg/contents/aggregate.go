package contents

// Counts is the aggregate mapping from package name to the number of index
// lines that listed it. The zero value is not usable; create one with
// [NewCounts]. A Counts map is owned by a single tally run and is not safe
// for concurrent mutation.
type Counts map[string]int

// NewCounts creates an empty aggregate.
func NewCounts() Counts {
	return make(Counts)
}

// Add credits one file to each of the given packages. A package appearing
// twice in one line's list is credited twice; that matches the index
// semantics where the count is per listing, not per distinct mention.
func (c Counts) Add(pkgs ...string) {
	for _, p := range pkgs {
		c[p]++
	}
}

// Merge folds other into c by summing counts per package. The operation is
// commutative and associative, so partial aggregates produced from line
// chunks can be combined in any order without changing the result.
func (c Counts) Merge(other Counts) {
	for p, n := range other {
		c[p] += n
	}
}

// Distinct returns the number of distinct package names seen so far.
func (c Counts) Distinct() int {
	return len(c)
}

// Total returns the total number of file listings credited across all
// packages.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}
