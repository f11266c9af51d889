package analysis

import (
	"math"
	"strings"
	"testing"
)

func TestCandidateShare(t *testing.T) {
	t.Parallel()

	shares := CandidateShare(samplePosts(), []string{colPlain})
	if len(shares) != 2 {
		t.Fatalf("unexpected shares: %+v", shares)
	}
	ana := shares[0]
	if ana.Candidate != "Ana" || ana.Posts != 3 || ana.WithAny != 1 {
		t.Fatalf("unexpected ana share: %+v", ana)
	}
	if math.Abs(ana.Percent-100.0/3) > 1e-9 || math.Abs(ana.Intensity-1.0/3) > 1e-9 {
		t.Fatalf("unexpected ana ratios: %+v", ana)
	}

	both := CandidateShare(samplePosts(), []string{colMeme, colFoto})
	if both[0].WithAny != 3 || both[0].Intensity != 1 {
		t.Fatalf("unexpected multi-column share: %+v", both[0])
	}

	if got := len(WithAny(samplePosts(), []string{colPlain})); got != 2 {
		t.Fatalf("unexpected posts with plain-folks: %d", got)
	}
}

func TestUsageByCandidate(t *testing.T) {
	t.Parallel()

	uses := UsageByCandidate(samplePosts(), []string{colMeme, colFoto})
	if len(uses) != 2 || uses[0].Column != colFoto || uses[0].Total != 4 {
		t.Fatalf("unexpected order: %+v", uses)
	}
	if uses[0].Uses["Luis"] != 3 || uses[0].Percent["Luis"] != 100 {
		t.Fatalf("unexpected luis usage: %+v", uses[0])
	}
	if uses[1].Uses["Luis"] != 0 || uses[1].Uses["Ana"] != 2 {
		t.Fatalf("unexpected meme usage: %+v", uses[1])
	}
}

func TestSelectColumns(t *testing.T) {
	t.Parallel()

	got := SelectColumns(testCols, TemporalKeywords, 0)
	if strings.Join(got, ",") != colMeme+","+colLogo {
		t.Fatalf("unexpected temporal columns: %v", got)
	}
	if got := SelectColumns(testCols, PlainFolksKeywords, 0); len(got) != 1 || got[0] != colPlain {
		t.Fatalf("unexpected plain-folks columns: %v", got)
	}
	if got := SelectColumns(testCols, TemporalKeywords, 1); len(got) != 1 {
		t.Fatalf("limit not applied: %v", got)
	}
}
