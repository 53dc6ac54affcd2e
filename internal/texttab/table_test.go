// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package texttab

import (
	"strings"
	"testing"
)

func TestAlign(t *testing.T) {
	check := func(s string, a align, w int, want string) {
		t.Helper()
		got := a.pad(s, w)
		if got != want {
			t.Errorf("want %q, got %q", want, got)
		}
	}

	check("abc", alignLeft, 6, "abc   ")
	check("abc", alignCenter, 6, " abc  ")
	check("abc", alignCenter, 7, "  abc  ")
	check("abc", alignRight, 6, "   abc")
	check("☃", alignRight, 4, "   ☃")
	check("toolong", alignRight, 3, "toolong")
}

func TestFormat(t *testing.T) {
	var tab Table
	check := func(want string) {
		t.Helper()
		var got strings.Builder
		if err := tab.Format(&got); err != nil {
			t.Fatal(err)
		}
		if want != got.String() {
			t.Errorf("want:\n%sgot:\n%s", want, got.String())
		}
		tab = Table{}
	}

	tab.Row().Cell("a").Cell("b").Cell("c")
	tab.Row().Cell("d").Cell("e").Cell("f")
	check("a  b  c\nd  e  f\n")

	// No trailing spaces.
	tab.Row().Cell("a").Cell("b").Cell("c")
	tab.Row().Cell("long").Cell("e").Cell("long")
	check("a     b  c\nlong  e  long\n")

	// Column and cell alignment.
	tab.SetAlign(1, Right)
	tab.Row().Cell("name").Cell("x")
	tab.Row().Cell("a").Cell("1.5")
	tab.Row().Cell("b", Right).Cell("10", Left)
	check("name    x\na     1.5\n   b  10\n")

	// Ragged rows.
	tab.Row().Cell("a")
	tab.Row().Cell("b").Cell("c")
	check("a\nb  c\n")
}

func TestFormatMarkdown(t *testing.T) {
	var tab Table
	tab.SetAlign(1, Right)
	tab.Row().Cell("file").Cell("seq")
	tab.Row().Cell("graf_10_5").Cell("1.25")
	tab.Row().Cell("a|b").Cell("")

	var got strings.Builder
	if err := tab.FormatMarkdown(&got); err != nil {
		t.Fatal(err)
	}
	want := "" +
		"| file      | seq  |\n" +
		"| :-------- | ---: |\n" +
		"| graf_10_5 | 1.25 |\n" +
		"| a\\|b      |      |\n"
	if got.String() != want {
		t.Errorf("want:\n%sgot:\n%s", want, got.String())
	}

	var empty Table
	got.Reset()
	if err := empty.FormatMarkdown(&got); err != nil || got.Len() != 0 {
		t.Errorf("empty table: got %q, %v", got.String(), err)
	}
}
