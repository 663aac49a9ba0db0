package order_test

import (
	"fmt"
	"testing"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Pending))
		assert.Equal(t, 2, int(order.Confirmed))
		assert.Equal(t, 3, int(order.Preparing))
		assert.Equal(t, 4, int(order.Ready))
		assert.Equal(t, 5, int(order.Delivering))
		assert.Equal(t, 6, int(order.Delivered))
		assert.Equal(t, 7, int(order.Cancelled))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.Pending,
			order.Confirmed,
			order.Preparing,
			order.Ready,
			order.Delivering,
			order.Delivered,
			order.Cancelled,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject invalid status values", func(t *testing.T) {
		invalidStatuses := []order.Status{
			order.Unknown,
			order.Status(-1),
			order.Status(8),
			order.Status(100),
		}

		for _, status := range invalidStatuses {
			t.Run(fmt.Sprintf("should reject status value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
				assert.Contains(t, err.Error(), fmt.Sprintf("%d is not a valid status", int(status)))
			})
		}
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return wire names for valid statuses", func(t *testing.T) {
		testCases := []struct {
			status   order.Status
			expected string
		}{
			{order.Pending, "pending"},
			{order.Confirmed, "confirmed"},
			{order.Preparing, "preparing"},
			{order.Ready, "ready"},
			{order.Delivering, "delivering"},
			{order.Delivered, "delivered"},
			{order.Cancelled, "cancelled"},
		}

		for _, tc := range testCases {
			assert.Equal(t, tc.expected, tc.status.String())
		}
	})

	t.Run("should return unknown for invalid statuses", func(t *testing.T) {
		assert.Equal(t, "unknown", order.Unknown.String())
		assert.Equal(t, "unknown", order.Status(-1).String())
		assert.Equal(t, "unknown", order.Status(99).String())
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("should parse all wire names", func(t *testing.T) {
		names := []string{
			"pending", "confirmed", "preparing", "ready", "delivering", "delivered", "cancelled",
		}

		for _, name := range names {
			t.Run(name, func(t *testing.T) {
				status, err := order.StatusFromString(name)

				require.NoError(t, err)
				assert.Equal(t, name, status.String())
			})
		}
	})

	t.Run("should reject unrecognized names", func(t *testing.T) {
		for _, name := range []string{"", "Pending", "done", "in-flight"} {
			status, err := order.StatusFromString(name)

			require.Error(t, err)
			assert.Equal(t, order.Unknown, status)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		}
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	t.Run("should report delivered and cancelled as terminal", func(t *testing.T) {
		assert.True(t, order.Delivered.IsTerminal())
		assert.True(t, order.Cancelled.IsTerminal())
	})

	t.Run("should report other statuses as non-terminal", func(t *testing.T) {
		for _, status := range []order.Status{
			order.Pending, order.Confirmed, order.Preparing, order.Ready, order.Delivering,
		} {
			assert.False(t, status.IsTerminal(), "%s should not be terminal", status)
		}
	})
}

func TestStatus_TransitionTo(t *testing.T) {
	forwardChain := []order.Status{
		order.Pending, order.Confirmed, order.Preparing, order.Ready, order.Delivering, order.Delivered,
	}

	t.Run("should allow each single forward step", func(t *testing.T) {
		for i := 0; i < len(forwardChain)-1; i++ {
			from, to := forwardChain[i], forwardChain[i+1]
			t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
				newStatus, err := from.TransitionTo(to)

				require.NoError(t, err)
				assert.Equal(t, to, newStatus)
			})
		}
	})

	t.Run("should allow cancellation from any non-terminal status", func(t *testing.T) {
		for _, from := range forwardChain[:len(forwardChain)-1] {
			t.Run(fmt.Sprintf("%s to cancelled", from), func(t *testing.T) {
				newStatus, err := from.TransitionTo(order.Cancelled)

				require.NoError(t, err)
				assert.Equal(t, order.Cancelled, newStatus)
			})
		}
	})

	t.Run("should reject every pair that is not adjacent in the forward chain", func(t *testing.T) {
		all := []order.Status{
			order.Pending, order.Confirmed, order.Preparing, order.Ready,
			order.Delivering, order.Delivered, order.Cancelled,
		}

		for i, from := range all {
			for j, to := range all {
				legal := (j == i+1 && to != order.Cancelled && i < len(forwardChain)-1) ||
					(to == order.Cancelled && !from.IsTerminal())
				if legal {
					continue
				}

				t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
					newStatus, err := from.TransitionTo(to)

					require.Error(t, err)
					require.ErrorIs(t, err, order.ErrIllegalTransition)
					assert.Equal(t, order.Unknown, newStatus)

					var illegalErr *order.IllegalTransitionError
					require.ErrorAs(t, err, &illegalErr)
					assert.Equal(t, from, illegalErr.From)
					assert.Equal(t, to, illegalErr.To)
				})
			}
		}
	})

	t.Run("should reject every transition out of a terminal status", func(t *testing.T) {
		targets := []order.Status{
			order.Pending, order.Confirmed, order.Preparing, order.Ready,
			order.Delivering, order.Delivered, order.Cancelled,
		}

		for _, from := range []order.Status{order.Delivered, order.Cancelled} {
			for _, to := range targets {
				_, err := from.TransitionTo(to)
				require.ErrorIs(t, err, order.ErrIllegalTransition,
					"%s -> %s should be rejected", from, to)
			}
		}
	})

	t.Run("should reject transitions involving invalid statuses", func(t *testing.T) {
		_, err := order.Unknown.TransitionTo(order.Pending)
		require.ErrorIs(t, err, order.ErrIllegalTransition)

		_, err = order.Pending.TransitionTo(order.Status(42))
		require.ErrorIs(t, err, order.ErrIllegalTransition)
	})
}

func TestStatus_ValidateCanHaveCourier(t *testing.T) {
	t.Run("should reject a courier before delivering", func(t *testing.T) {
		for _, status := range []order.Status{
			order.Pending, order.Confirmed, order.Preparing, order.Ready,
		} {
			require.Error(t, status.ValidateCanHaveCourier(true), "%s must not carry a courier", status)
			require.NoError(t, status.ValidateCanHaveCourier(false))
		}
	})

	t.Run("should require a courier while delivering and after delivery", func(t *testing.T) {
		for _, status := range []order.Status{order.Delivering, order.Delivered} {
			require.NoError(t, status.ValidateCanHaveCourier(true))
			require.Error(t, status.ValidateCanHaveCourier(false), "%s must carry a courier", status)
		}
	})

	t.Run("should allow cancelled orders with or without a courier", func(t *testing.T) {
		require.NoError(t, order.Cancelled.ValidateCanHaveCourier(true))
		require.NoError(t, order.Cancelled.ValidateCanHaveCourier(false))
	})
}
