// Package restaurant provides the Restaurant and Dish catalog entities.
// Both are reference data with no lifecycle beyond creation; order placement
// snapshots dish name and price into the order's item lines.
package restaurant
