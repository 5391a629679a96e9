package fibtree

// BranchCount returns the number of branches at the given level, which is
// the level-th Fibonacci number with F(1) = F(2) = 1. Levels below 1 have no
// branches.
func BranchCount(level int) int {
	if level < 1 {
		return 0
	}
	cur, next := 1, 1
	for n := 1; n < level; n++ {
		cur, next = next, cur+next
	}
	return cur
}

// TotalBranches returns the number of branches in a tree with the given
// number of levels.
func TotalBranches(levels int) int {
	total := 0
	for l := 1; l <= levels; l++ {
		total += BranchCount(l)
	}
	return total
}
