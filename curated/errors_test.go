// This file is part of Gomars.
//
// Gomars is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gomars is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gomars.  If not, see <https://www.gnu.org/licenses/>.

package curated_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/gomars/curated"
	"github.com/jetsetilly/gomars/test"
)

const testError = "test error: %s"
const testErrorB = "test error B: %s"

func TestDuplicateErrors(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	test.ExpectEquality(t, e.Error(), "test error: foo")

	// packing errors of the same type next to each other causes one of them
	// to be dropped
	f := curated.Errorf(testError, e)
	test.ExpectEquality(t, f.Error(), "test error: foo")
}

func TestIs(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	test.ExpectSuccess(t, curated.Is(e, testError))
	test.ExpectFailure(t, curated.Is(e, testErrorB))

	// Has() should fail because we haven't included testErrorB anywhere in the error
	test.ExpectFailure(t, curated.Has(e, testErrorB))

	// packing errors of different types
	f := curated.Errorf(testErrorB, e)
	test.ExpectSuccess(t, curated.Is(f, testErrorB))
	test.ExpectFailure(t, curated.Is(f, testError))
	test.ExpectSuccess(t, curated.Has(f, testError))
	test.ExpectSuccess(t, curated.IsAny(f))

	// plain errors are not curated
	test.ExpectFailure(t, curated.IsAny(errors.New("plain error")))
}

var sentinel = errors.New("sentinel")

type typed struct {
	v int
}

func (t *typed) Error() string {
	return "typed"
}

func TestUnwrap(t *testing.T) {
	e := curated.Errorf("wrapped: %v", sentinel)
	test.ExpectEquality(t, e.Error(), "wrapped: sentinel")
	test.ExpectSuccess(t, errors.Is(e, sentinel))

	f := curated.Errorf("outer: %w", e)
	test.ExpectEquality(t, f.Error(), "outer: wrapped: sentinel")
	test.ExpectSuccess(t, errors.Is(f, sentinel))

	g := curated.Errorf("typed: %v", &typed{v: 10})
	var tp *typed
	test.ExpectSuccess(t, errors.As(g, &tp))
	test.ExpectEquality(t, tp.v, 10)
}
