package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// JSONRepository persists records as ordered JSON arrays on disk, matching
// the wire contract consumed by the viewer. Order of SaveAll input is kept.
type JSONRepository struct {
	propertyFile string
	auctionFile  string
	mutex        sync.Mutex
}

func NewJSONRepository(propertyFile, auctionFile string) *JSONRepository {
	return &JSONRepository{propertyFile: propertyFile, auctionFile: auctionFile}
}

func writeJSONFile(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, v)
}

func (r *JSONRepository) SaveAll(_ context.Context, properties []Property) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if properties == nil {
		properties = []Property{}
	}
	return writeJSONFile(r.propertyFile, properties)
}

func (r *JSONRepository) FindAll(_ context.Context) ([]Property, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	var properties []Property
	if err := readJSONFile(r.propertyFile, &properties); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.propertyFile, err)
	}
	return properties, nil
}

// FindWithFilters applies PropertyFilter in memory. The JSON backend exists
// for single-machine runs, so a linear scan is acceptable.
func (r *JSONRepository) FindWithFilters(ctx context.Context, filter PropertyFilter, pagination PaginationParams) (*PropertySearchResult, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var matched []Property
	for _, p := range all {
		if matchesFilter(p, filter) {
			matched = append(matched, p)
		}
	}

	if pagination.PageSize <= 0 {
		pagination.PageSize = 10
	}
	if pagination.Page <= 0 {
		pagination.Page = 1
	}
	totalItems := int64(len(matched))
	totalPages := int((totalItems + int64(pagination.PageSize) - 1) / int64(pagination.PageSize))

	start := (pagination.Page - 1) * pagination.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pagination.PageSize
	if end > len(matched) {
		end = len(matched)
	}

	return &PropertySearchResult{
		Properties:  matched[start:end],
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: pagination.Page,
		PageSize:    pagination.PageSize,
	}, nil
}

func matchesFilter(p Property, filter PropertyFilter) bool {
	if filter.Locality != "" && !strings.Contains(strings.ToLower(p.Locality), strings.ToLower(filter.Locality)) {
		return false
	}
	if filter.Builder != "" && !strings.Contains(strings.ToLower(p.Builder), strings.ToLower(filter.Builder)) {
		return false
	}
	if filter.Status != "" && p.Status != filter.Status {
		return false
	}
	if filter.BHK != "" && !strings.Contains(p.BHK, filter.BHK) {
		return false
	}
	if len(filter.Sources) > 0 {
		found := false
		for _, s := range filter.Sources {
			if p.Source == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.PriceMinLakhs > 0 && (p.PriceMaxLakhs == nil || *p.PriceMaxLakhs < filter.PriceMinLakhs) {
		return false
	}
	if filter.PriceMaxLakhs > 0 && (p.PriceMinLakhs == nil || *p.PriceMinLakhs > filter.PriceMaxLakhs) {
		return false
	}
	if filter.HandoverYear > 0 && (p.HandoverYear == nil || *p.HandoverYear > filter.HandoverYear) {
		return false
	}
	return true
}

func (r *JSONRepository) SaveAllAuctions(_ context.Context, auctions []AuctionProperty) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if auctions == nil {
		auctions = []AuctionProperty{}
	}
	return writeJSONFile(r.auctionFile, auctions)
}

func (r *JSONRepository) FindAllAuctions(_ context.Context) ([]AuctionProperty, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	var auctions []AuctionProperty
	if err := readJSONFile(r.auctionFile, &auctions); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.auctionFile, err)
	}
	return auctions, nil
}

func (r *JSONRepository) ClearAll(ctx context.Context) error {
	return r.SaveAll(ctx, []Property{})
}

func (r *JSONRepository) Close() {}
