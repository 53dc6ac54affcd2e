// Copyright 2025 The speedstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchcsv

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReader(t *testing.T) {
	for _, test := range []struct {
		name    string
		input   string
		want    []Measurement
		wantErr string
	}{
		{
			name: "basic",
			input: `file,n,a,time,recursion calls
graf_10_5.txt,10,5,0.5,100
graf_20_7.txt,20,7,1.25,2000
`,
			want: []Measurement{
				{File: "graf_10_5.txt", N: 10, A: 5, Time: 0.5, RecursionCalls: 100, Impl: "seq"},
				{File: "graf_20_7.txt", N: 20, A: 7, Time: 1.25, RecursionCalls: 2000, Impl: "seq"},
			},
		},
		{
			name: "reordered columns and extras",
			input: `Time, recursion calls ,A,note,File
3e-3,42,4,x,graf_30_10.txt
`,
			want: []Measurement{
				{File: "graf_30_10.txt", N: 30, A: 4, Time: 0.003, RecursionCalls: 42, Impl: "seq"},
			},
		},
		{
			name: "blank lines",
			input: `file,n,a,time,recursion calls

,,,,
graf_10_5.txt,10,5.0,1,7
`,
			want: []Measurement{
				{File: "graf_10_5.txt", N: 10, A: 5, Time: 1, RecursionCalls: 7, Impl: "seq"},
			},
		},
		{
			name:  "header only",
			input: "file,n,a,time,recursion calls\n",
		},
		{
			name:    "empty",
			input:   "",
			wantErr: "seq.csv:0: missing header",
		},
		{
			name:    "missing column",
			input:   "file,n,a,recursion calls\n",
			wantErr: `seq.csv:1: missing column "time"`,
		},
		{
			name: "bad time",
			input: `file,n,a,time,recursion calls
graf_10_5.txt,10,5,1,7
graf_10_5.txt,10,5,fast,7
`,
			want: []Measurement{
				{File: "graf_10_5.txt", N: 10, A: 5, Time: 1, RecursionCalls: 7, Impl: "seq"},
			},
			wantErr: `seq.csv:3: bad time "fast"`,
		},
		{
			name: "fractional a",
			input: `file,n,a,time,recursion calls
graf_10_5.txt,10,5.5,1,7
`,
			wantErr: `seq.csv:2: bad a "5.5"`,
		},
		{
			name: "short row",
			input: `file,n,a,time,recursion calls
graf_10_5.txt,10,5,1
`,
			wantErr: `seq.csv:2: missing value for "recursion calls"`,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(test.input), "seq.csv", "seq")
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("measurements differ (-want +got):\n%s", diff)
			}
			if test.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("got success, want error %s", test.wantErr)
			}
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Errorf("got error of type %T, want *SyntaxError", err)
			}
			if err.Error() != test.wantErr {
				t.Errorf("got error %s, want %s", err, test.wantErr)
			}
		})
	}
}

func TestWriterRoundTrip(t *testing.T) {
	ms := []Measurement{
		{File: "graf_10_5.txt", N: 10, A: 5, Time: 0.5, RecursionCalls: 100, Impl: "mpi_1"},
		{File: "graf_40_15.txt", N: 40, A: 15, Time: 1e-05, RecursionCalls: 1 << 40, Impl: "mpi_1"},
	}
	var buf strings.Builder
	w := NewWriter(&buf, true)
	for i := range ms {
		if err := w.Write(&ms[i]); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	want := "file,n,a,time,recursion calls\n" +
		"graf_10_5.txt,10,5,0.5,100\n" +
		"graf_40_15.txt,40,15,1e-05,1099511627776\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}

	got, err := Read(strings.NewReader(buf.String()), "out.csv", "mpi_1")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(ms, got); diff != "" {
		t.Errorf("round trip differs (-want +got):\n%s", diff)
	}
}
