package guard_test

import (
	"errors"
	"testing"

	"dispatch/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("default_error_names_the_constructor", func(t *testing.T) {
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

// TestConstructorGuard_InValueObject shows the intended usage: a domain
// value object embeds the guard so its zero value fails validation.
func TestConstructorGuard_InValueObject(t *testing.T) {
	type Location struct {
		zone  string
		guard guard.ConstructorGuard
	}

	var errLocationNotConstructed = errors.New("Location must be created via NewLocation")

	newLocation := func(zone string) (Location, error) {
		if zone == "" {
			return Location{}, errors.New("zone is required")
		}
		return Location{zone: zone, guard: guard.NewConstructorGuard()}, nil
	}

	validateLocation := func(l Location) error {
		return l.guard.Validate(errLocationNotConstructed)
	}

	t.Run("constructed_value_passes_validation", func(t *testing.T) {
		loc, err := newLocation("north")

		require.NoError(t, err)
		require.NoError(t, validateLocation(loc))
		assert.Equal(t, "north", loc.zone)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var loc Location

		err := validateLocation(loc)

		require.Error(t, err)
		assert.Equal(t, errLocationNotConstructed, err)
	})
}

// TestConstructorGuard_Concurrency verifies that Validate is safe to call
// from many goroutines at once.
func TestConstructorGuard_Concurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	done := make(chan bool)
	for range 100 {
		go func() {
			for range 1000 {
				assert.NoError(t, g.Validate(validationError))
			}
			done <- true
		}()
	}

	for range 100 {
		<-done
	}
}
