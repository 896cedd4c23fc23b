package main

import (
	"errors"
	"testing"

	"github.com/Kai-Rice/study-log/internal/store"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"usage error", store.Usagef("bad flag"), 2},
		{"unknown command", errors.New(`unknown command "frobnicate" for "study-log"`), 2},
		{"missing required flag", errors.New(`required flag(s) "group" not set`), 2},
		{"validation error", &store.ValidationError{Column: "minutes", Msg: "not a number"}, 1},
		{"storage error", &store.StorageError{Path: "data/study.csv", Err: errors.New("bad csv")}, 1},
		{"plain error", errors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
