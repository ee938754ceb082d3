package contents

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"testing/iotest"
)

func TestTally(t *testing.T) {
	input := strings.Join([]string{
		"bin/a pkg1,pkg2",
		"bin/b pkg2",
		"",
		"bin/c pkg1",
	}, "\n")

	counts, err := Tally(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Tally error: %v", err)
	}

	want := Counts{"pkg1": 2, "pkg2": 2}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("counts = %v, want %v", counts, want)
	}
}

func TestTallyEmptyStream(t *testing.T) {
	counts, err := Tally(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Tally error: %v", err)
	}
	if len(counts) != 0 {
		t.Errorf("counts = %v, want empty", counts)
	}
}

func TestTallyPropagatesReadErrors(t *testing.T) {
	readErr := errors.New("connection reset")

	_, err := Tally(iotest.ErrReader(readErr))
	if !errors.Is(err, readErr) {
		t.Fatalf("err = %v, want wrapped %v", err, readErr)
	}
}

func TestTallyTop(t *testing.T) {
	input := strings.Join([]string{
		"bin/a pkg1,pkg2",
		"bin/b pkg2",
		"",
		"bin/c pkg1",
	}, "\n")

	got, err := TallyTop(strings.NewReader(input), 2)
	if err != nil {
		t.Fatalf("TallyTop error: %v", err)
	}

	// pkg1 and pkg2 tie at 2; alphabetical order breaks the tie.
	want := []Entry{{"pkg1", 2}, {"pkg2", 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TallyTop = %v, want %v", got, want)
	}
}

func TestTallyTopIdempotent(t *testing.T) {
	input := "bin/a pkg1,pkg2\nbin/b pkg2\nbin/c pkg3\n"

	first, err := TallyTop(strings.NewReader(input), 3)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := TallyTop(strings.NewReader(input), 3)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("runs disagree: %v vs %v", first, second)
	}
}

func TestTallyTopKZero(t *testing.T) {
	got, err := TallyTop(strings.NewReader("bin/a pkg1\n"), 0)
	if err != nil {
		t.Fatalf("TallyTop error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("TallyTop(_, 0) = %v, want empty", got)
	}
}

func TestTallyLongLines(t *testing.T) {
	// A path well past bufio's default 64K token size must still parse.
	line := strings.Repeat("a", 200*1024) + " pkg1"

	counts, err := Tally(strings.NewReader(line))
	if err != nil {
		t.Fatalf("Tally error: %v", err)
	}
	if counts["pkg1"] != 1 {
		t.Errorf("pkg1 = %d, want 1", counts["pkg1"])
	}
}
