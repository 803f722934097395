package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/desertthunder/grocery/internal/formatter"
	"github.com/desertthunder/grocery/internal/models"
	"github.com/desertthunder/grocery/internal/shared"
)

const (
	defaultWorkers = 4
	maxWorkers     = 10
)

// BulkExportOpts contains configuration for bulk grocery list exports.
type BulkExportOpts struct {
	Format     string // Export format: json, csv, markdown, text
	OutputDir  string // Base output directory (default: grocery_export_{epoch})
	NumWorkers int    // Concurrent workers (default: 4)
}

// ListExportResult is the outcome of exporting one grocery list.
type ListExportResult struct {
	GroceryListID int64    `json:"grocery_list_id"`
	Items         int      `json:"items"`
	Success       bool     `json:"success"`
	Files         []string `json:"files"`
	Error         error    `json:"-"`
	ErrorMessage  string   `json:"error,omitempty"`
}

// BulkExportResult summarizes a bulk export.
type BulkExportResult struct {
	Format            string             `json:"format"`
	ExportedAt        time.Time          `json:"exported_at"`
	TotalLists        int                `json:"total_lists"`
	SuccessfulExports int                `json:"successful_exports"`
	FailedExports     int                `json:"failed_exports"`
	OutputDirectory   string             `json:"output_directory"`
	ManifestPath      string             `json:"-"`
	Results           []ListExportResult `json:"results"`
}

type listExportJob struct {
	list *models.GroceryList
}

// BulkExport exports every grocery list concurrently and writes a manifest into opts.OutputDir.
//
// Failures of single lists are recorded in the result and do not stop the export.
func (e *ExportEngine) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, opts BulkExportOpts) (*BulkExportResult, error) {
	if opts.Format == "" {
		opts.Format = "csv"
	}
	if !validFormat(opts.Format) {
		return nil, fmt.Errorf("%w: format %q", shared.ErrInvalidArgument, opts.Format)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("grocery_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultWorkers
	}
	if opts.NumWorkers > maxWorkers {
		opts.NumWorkers = maxWorkers
	}

	e.sendProgress(prog, loadingListsUpdate())
	lists, err := e.loadLists()
	if err != nil {
		return nil, err
	}
	e.sendProgress(prog, foundListsUpdate(len(lists)))

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		Format:          opts.Format,
		ExportedAt:      time.Now().UTC(),
		TotalLists:      len(lists),
		OutputDirectory: opts.OutputDir,
		Results:         make([]ListExportResult, 0, len(lists)),
	}

	jobs := make(chan listExportJob, len(lists))
	results := make(chan ListExportResult, len(lists))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for _, list := range lists {
			select {
			case <-ctx.Done():
				return
			case jobs <- listExportJob{list: list}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(lists), res.GroceryListID, len(res.Files)))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(lists), res.GroceryListID, res.Error))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("export interrupted: %w", err)
	}

	sort.Slice(result.Results, func(i, j int) bool {
		return result.Results[i].GroceryListID < result.Results[j].GroceryListID
	})

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := writeManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	e.sendProgress(prog, manifestUpdate(manifestPath))
	return result, nil
}

// exportWorker exports lists from the jobs channel until it is closed or ctx is done.
func (e *ExportEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan listExportJob,
	results chan<- ListExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- e.exportSingleList(job, opts)
	}
}

// exportSingleList writes one grocery list in opts.Format.
func (e *ExportEngine) exportSingleList(j listExportJob, opts BulkExportOpts) ListExportResult {
	result := ListExportResult{
		GroceryListID: j.list.ID,
		Items:         len(j.list.Lines),
		Files:         []string{},
	}

	base := fmt.Sprintf("grocery_list_%d", j.list.ID)
	var (
		file string
		err  error
	)

	switch opts.Format {
	case "csv":
		file, err = formatter.WriteCSVExport(j.list, filepath.Join(opts.OutputDir, base+".csv"))
	case "markdown":
		file, err = formatter.WriteMarkdownExport(j.list, filepath.Join(opts.OutputDir, base))
	case "text":
		file, err = formatter.WriteTextExport(j.list, filepath.Join(opts.OutputDir, base+".txt"))
	case "json":
		file = filepath.Join(opts.OutputDir, base+".json")
		err = writeJSONFile(j.list, file)
	}

	if err != nil {
		result.Error = fmt.Errorf("%s export failed: %w", opts.Format, err)
		result.ErrorMessage = result.Error.Error()
		return result
	}

	result.Files = []string{file}
	result.Success = true
	return result
}

func validFormat(format string) bool {
	switch format {
	case "csv", "markdown", "text", "json":
		return true
	default:
		return false
	}
}

func writeManifest(result *BulkExportResult, path string) error {
	return writeJSONFile(result, path)
}

func writeJSONFile(v any, path string) error {
	data, err := shared.MarshalJSON(v, true)
	if err != nil {
		return fmt.Errorf("JSON marshal failed: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("JSON write failed: %w", err)
	}
	return nil
}
