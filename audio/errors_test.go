// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrors_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{ErrInvalidDstSize, "dst size must be multiple of channels"},
		{ErrOpen, "could not open audio file"},
		{ErrUnsupportedChannelLayout, "only two channels maximum are supported"},
		{ErrAllocation, "could not allocate sample storage"},
		{ErrResample, "could not resample audio"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			if tt.err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
			}
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	t.Parallel()

	all := []error{ErrInvalidDstSize, ErrInvalidChannels, ErrOpen, ErrUnsupportedChannelLayout, ErrAllocation, ErrResample}
	for i, a := range all {
		for j, b := range all {
			if i != j && errors.Is(a, b) {
				t.Errorf("errors.Is(%v, %v) = true, want false", a, b)
			}
		}
	}
}

func TestErrors_Wrapping(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("%w: %w", ErrResample, fmt.Errorf("huge: %w", ErrAllocation))
	if !errors.Is(err, ErrResample) {
		t.Error("errors.Is(err, ErrResample) = false, want true")
	}
	if !errors.Is(err, ErrAllocation) {
		t.Error("errors.Is(err, ErrAllocation) = false, want true")
	}
}
