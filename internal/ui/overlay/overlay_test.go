package overlay

import (
	"strings"
	"testing"

	"github.com/llehouerou/ytplay/internal/ui/testutil"
)

func TestCompose(t *testing.T) {
	base := "aaaaaa\nbbbbbb\ncccccc"
	over := "\n  XY\n"

	got := Compose(base, over, 6)
	want := "aaaaaa\nbbXYbb\ncccccc"
	if got != want {
		t.Errorf("Compose() = %q, want %q", got, want)
	}
}

func TestCompose_PadsShortBase(t *testing.T) {
	got := Compose("ab", "    Z", 6)
	if got != "ab  Z " {
		t.Errorf("Compose() = %q, want %q", got, "ab  Z ")
	}
}

func TestCompose_IgnoresExtraOverlayLines(t *testing.T) {
	got := Compose("one", "\nXX\nYY", 3)
	if got != "one" {
		t.Errorf("Compose() = %q, want %q", got, "one")
	}
}

func TestCompose_StyledOverlay(t *testing.T) {
	got := Compose("......", " \x1b[31mRR\x1b[0m", 6)
	if plain := testutil.StripANSI(got); plain != ".RR..." {
		t.Errorf("Compose() plain = %q, want %q", plain, ".RR...")
	}
}

func TestCenter(t *testing.T) {
	base := strings.Repeat(strings.Repeat(".", 9)+"\n", 4) + strings.Repeat(".", 9)
	got := testutil.SplitLines(Center(base, "###", 9, 5))

	if len(got) != 5 {
		t.Fatalf("got %d lines, want 5", len(got))
	}
	if got[2] != "...###..." {
		t.Errorf("middle line = %q, want %q", got[2], "...###...")
	}
	if got[0] != strings.Repeat(".", 9) {
		t.Errorf("first line = %q, should be untouched", got[0])
	}
}
