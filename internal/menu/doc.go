// Package menu builds the aggregated public menu and applies validated
// admin mutations.
//
// The aggregation reads categories in sort order, items in (category,
// sort order) order, and partitions the items under their owning category.
// Settings (title, subtitle, notes, hero image) are merged in with
// documented default literals so consumers never see nulls.
//
// Mutations validate their input (non-empty names, non-negative prices)
// before touching the store. Update and delete of a missing id succeed
// silently; the HTTP surface does not signal not-found for mutations.
package menu
