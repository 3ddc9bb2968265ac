package libdiff

import "github.com/treedoc-format/go-treedoc/ir"

type lcsPair struct {
	oi, nj int
}

// lcsPairs aligns two sequences under deep equality with the classic
// O(n·m) dynamic program, returning the matched index pairs in order.
// On backtrack ties the old-side cursor advances first; that choice
// decides whether adjacent mismatches come out del-before-insert and
// must not change, or existing patch documents stop reproducing.
func lcsPairs(old, new []*ir.Node) []lcsPair {
	n, m := len(old), len(new)
	dp := make([][]int, n+1)
	for i := range dp {
		dp[i] = make([]int, m+1)
	}
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			if ir.Equal(old[i-1], new[j-1]) {
				dp[i][j] = dp[i-1][j-1] + 1
				continue
			}
			dp[i][j] = max(dp[i-1][j], dp[i][j-1])
		}
	}
	var rev []lcsPair
	i, j := n, m
	for i > 0 && j > 0 {
		switch {
		case ir.Equal(old[i-1], new[j-1]):
			rev = append(rev, lcsPair{oi: i - 1, nj: j - 1})
			i--
			j--
		case dp[i-1][j] >= dp[i][j-1]:
			i--
		default:
			j--
		}
	}
	for a, b := 0, len(rev)-1; a < b; a, b = a+1, b-1 {
		rev[a], rev[b] = rev[b], rev[a]
	}
	return rev
}
