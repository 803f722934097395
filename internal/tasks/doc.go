// Package tasks runs long-running grocery list operations with real-time progress reporting.
//
// # Bulk Export
//
// [ExportEngine.BulkExport] writes every grocery list to its own file using a pool of workers:
//   - Loads all products and grocery list items once and joins them into [models.GroceryList] values
//   - Dispatches one job per list to the workers
//   - Collects per-list results, tolerating partial failures
//   - Writes an export_manifest.json summarizing the run
//
// # Progress Reporting
//
// Operations accept an optional send-only channel of [ProgressUpdate].
// Updates use select with default so a slow or absent reader never blocks an export.
package tasks
