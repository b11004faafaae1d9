package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"storefront/internal/core/domain/model/catalog"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

const suggestionDescriptionLimit = 200

// BatchReport is the outcome of one suggester call.
type BatchReport struct {
	Size    int
	Updated int
	Lines   []string
	Err     error
}

func (r BatchReport) String() string {
	if r.Err != nil {
		return fmt.Sprintf("Batch failed: %v", r.Err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Batch complete: Updated %d/%d products.", r.Updated, r.Size)
	for _, line := range r.Lines {
		b.WriteString("\n   ")
		b.WriteString(line)
	}
	return b.String()
}

type AutoCategorizeReport struct {
	Categories int
	Products   int
	Batches    []BatchReport
}

type AutoCategorizeCommandHandler struct {
	uowFactory CatalogUoWFactory
	suggester  ports.CategorySuggester
	logger     *slog.Logger
}

func NewAutoCategorizeCommandHandler(
	uowFactory CatalogUoWFactory,
	suggester ports.CategorySuggester,
	logger *slog.Logger,
) AutoCategorizeCommandHandler {
	return AutoCategorizeCommandHandler{
		uowFactory: uowFactory,
		suggester:  suggester,
		logger:     logger.With("component", "AutoCategorizeCommandHandler"),
	}
}

// Handle sends products newest first to the suggester in parallel batches and adds
// the suggested categories that exist. Suggestions are additive; a failed batch is
// reported and does not stop the others.
func (h AutoCategorizeCommandHandler) Handle(ctx context.Context, cmd AutoCategorizeCommand) (AutoCategorizeReport, error) {
	if err := cmd.Validate(); err != nil {
		return AutoCategorizeReport{}, err
	}

	categories, products, err := h.load(ctx, cmd.limit)
	if err != nil {
		return AutoCategorizeReport{}, err
	}
	tree, lookup := categoryContext(categories)
	report := AutoCategorizeReport{Categories: len(lookup), Products: len(products)}
	if len(products) == 0 {
		return report, nil
	}

	var batches [][]*catalog.Product
	for start := 0; start < len(products); start += cmd.batchSize {
		batches = append(batches, products[start:min(start+cmd.batchSize, len(products))])
	}
	report.Batches = make([]BatchReport, len(batches))

	var g errgroup.Group
	g.SetLimit(cmd.maxWorkers)
	for i, batch := range batches {
		g.Go(func() error {
			report.Batches[i] = h.processBatch(ctx, batch, tree, lookup)
			return nil
		})
	}
	_ = g.Wait()

	return report, ctx.Err()
}

func (h AutoCategorizeCommandHandler) load(ctx context.Context, limit int) ([]*catalog.Category, []*catalog.Product, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	categories, err := uow.CategoryRepository().List(ctx)
	if err != nil {
		return nil, nil, err
	}
	products, err := uow.ProductRepository().ListNewest(ctx, limit)
	if err != nil {
		return nil, nil, err
	}
	return categories, products, uow.Commit(ctx)
}

func (h AutoCategorizeCommandHandler) processBatch(
	ctx context.Context,
	batch []*catalog.Product,
	tree string,
	lookup map[string]*catalog.Category,
) BatchReport {
	report := BatchReport{Size: len(batch)}

	summaries := make([]ports.ProductSummary, 0, len(batch))
	for _, p := range batch {
		summaries = append(summaries, ports.ProductSummary{
			ID:          p.ID().String(),
			Title:       p.Title(),
			Description: truncateRunes(p.Description(), suggestionDescriptionLimit),
			Specs:       dimensionsSpec(p),
		})
	}

	mapping, err := h.suggester.SuggestCategories(ctx, tree, summaries)
	if err != nil {
		h.logger.Error("Category suggestion failed", "batch_size", len(batch), "error", err)
		report.Err = err
		return report
	}

	uow := h.uowFactory.Create()
	if report.Err = uow.Begin(ctx); report.Err != nil {
		return report
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	for _, p := range batch {
		names, ok := mapping[p.ID().String()]
		if !ok {
			continue
		}
		var valid []string
		for _, name := range names {
			c, known := lookup[strings.ToLower(strings.TrimSpace(name))]
			if !known {
				continue
			}
			valid = append(valid, c.Title())
			p.AssignCategories(c.ID())
		}
		if len(valid) == 0 {
			continue
		}
		if err = uow.ProductRepository().Update(ctx, p); err != nil {
			report.Lines = append(report.Lines, fmt.Sprintf("[ERROR] Processing ID %s: %v", p.ID(), err))
			continue
		}
		report.Updated++
		report.Lines = append(report.Lines, fmt.Sprintf("[UPDATED] %q -> %s", p.Title(), formatNames(valid)))
	}

	if err = uow.Commit(ctx); err != nil {
		report.Err = err
	}
	return report
}

// categoryContext renders roots and their direct children as an indented list and
// indexes every category by lower-cased title.
func categoryContext(categories []*catalog.Category) (string, map[string]*catalog.Category) {
	lookup := make(map[string]*catalog.Category, len(categories))
	rows := make([]services.CategoryNode[struct{}], 0, len(categories))
	for _, c := range categories {
		lookup[strings.ToLower(c.Title())] = c
		row := services.CategoryNode[struct{}]{ID: c.ID().String(), Title: c.Title(), Slug: c.Slug()}
		if parent := c.ParentID(); parent != nil {
			row.ParentID = parent.String()
		}
		rows = append(rows, row)
	}

	var lines []string
	services.FlattenCategoryTree(services.BuildCategoryTree(rows), func(n *services.CategoryNode[struct{}], depth int) {
		if depth <= 1 {
			lines = append(lines, strings.Repeat("  ", depth)+"- "+n.Title)
		}
	})
	return strings.Join(lines, "\n"), lookup
}

func dimensionsSpec(p *catalog.Product) any {
	if v, ok := p.Specifications()["dimensions"]; ok && v != nil {
		return v
	}
	return ""
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

func formatNames(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
