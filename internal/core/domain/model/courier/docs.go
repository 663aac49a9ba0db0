// Package courier provides the Courier aggregate for the food-delivery system.
// A courier carries identity (name, phone), a customer rating, and an
// availability status (available, busy, offline) that gates dispatch:
// only available couriers can take deliveries, and a busy courier returns
// to available when the delivery finishes or the order is cancelled.
package courier
