package repository

import (
	"context"

	"github.com/propradar/go-property-crawler/internal/utils"
)

// Property status values. Anything else coerces to StatusNewLaunch.
const (
	StatusNewLaunch         = "new_launch"
	StatusUnderConstruction = "under_construction"
	StatusReadyToMove       = "ready_to_move"
)

// Source site tags.
const (
	Source99Acres   = "99acres"
	SourceNoBroker  = "nobroker"
	SourceEAuctions = "eauctionsindia"
)

// Property is the canonical builder-project record. URL is the stable
// identity key; ID is a short display key derived from it. Numeric price
// fields are in lakhs and nil when unknown.
type Property struct {
	ID            string   `bson:"_id,omitempty" json:"id"`
	Source        string   `bson:"source" json:"source"`
	Status        string   `bson:"status" json:"status"`
	Name          string   `bson:"name" json:"name"`
	Builder       string   `bson:"builder" json:"builder"`
	Locality      string   `bson:"locality" json:"locality"`
	PriceMinLakhs *float64 `bson:"price_min_lakhs" json:"price_min_lakhs"`
	PriceMaxLakhs *float64 `bson:"price_max_lakhs" json:"price_max_lakhs"`
	PriceDisplay  string   `bson:"price_display" json:"price_display"`
	Handover      string   `bson:"handover" json:"handover"`
	HandoverYear  *int     `bson:"handover_year" json:"handover_year"`
	BHK           string   `bson:"bhk" json:"bhk"`
	URL           string   `bson:"url" json:"url"`
}

// AuctionProperty is a bank-auctioned property. It follows the same
// verify-then-persist discipline as Property but is a separate entity.
type AuctionProperty struct {
	ID              string   `bson:"_id,omitempty" json:"id"`
	Name            string   `bson:"name" json:"name"`
	Description     string   `bson:"description" json:"description"`
	PriceDisplay    string   `bson:"price_display" json:"price_display"`
	PriceLakhs      *float64 `bson:"price_lakhs" json:"price_lakhs"`
	EMDDisplay      string   `bson:"emd_display" json:"emd_display"`
	EMDLakhs        *float64 `bson:"emd_lakhs" json:"emd_lakhs"`
	SqFt            string   `bson:"sq_ft" json:"sq_ft"`
	BankName        string   `bson:"bank_name" json:"bank_name"`
	BranchName      string   `bson:"branch_name" json:"branch_name"`
	Contact         string   `bson:"contact" json:"contact"`
	ContactPerson   string   `bson:"contact_person" json:"contact_person"`
	ContactMobile   string   `bson:"contact_mobile" json:"contact_mobile"`
	Address         string   `bson:"address" json:"address"`
	URL             string   `bson:"url" json:"url"`
	AuctionStart    string   `bson:"auction_start" json:"auction_start"`
	AuctionEnd      string   `bson:"auction_end" json:"auction_end"`
	AuctionDateTime string   `bson:"auction_datetime" json:"auction_datetime"`
	Category        string   `bson:"category" json:"category"`
	Source          string   `bson:"source" json:"source"`
}

// GeneratePropertyID derives the short display id from a canonical URL:
// the last 14 alphanumeric characters. Deterministic, unique enough for UI
// keys, not globally unique.
func GeneratePropertyID(url string) string {
	return utils.AlnumSuffix(url, 14)
}

// PropertyFilter defines the search filters exposed by the API.
type PropertyFilter struct {
	Locality      string   `json:"locality,omitempty"`
	Builder       string   `json:"builder,omitempty"`
	Status        string   `json:"status,omitempty"`
	BHK           string   `json:"bhk,omitempty"`
	PriceMinLakhs float64  `json:"price_min_lakhs,omitempty"`
	PriceMaxLakhs float64  `json:"price_max_lakhs,omitempty"`
	HandoverYear  int      `json:"handover_year,omitempty"`
	Sources       []string `json:"sources,omitempty"`
}

// PaginationParams defines page-based pagination.
type PaginationParams struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// PropertySearchResult is a page of properties plus paging metadata.
type PropertySearchResult struct {
	Properties  []Property `json:"properties"`
	TotalItems  int64      `json:"total_items"`
	TotalPages  int        `json:"total_pages"`
	CurrentPage int        `json:"current_page"`
	PageSize    int        `json:"page_size"`
}

// PropertyRepository is the persistence collaborator for builder projects.
// Implementations must preserve the order in which records are given to
// SaveAll (first-seen order by URL).
type PropertyRepository interface {
	SaveAll(ctx context.Context, properties []Property) error
	FindAll(ctx context.Context) ([]Property, error)
	FindWithFilters(ctx context.Context, filter PropertyFilter, pagination PaginationParams) (*PropertySearchResult, error)
	ClearAll(ctx context.Context) error
	Close()
}

// AuctionRepository persists bank-auction records.
type AuctionRepository interface {
	SaveAllAuctions(ctx context.Context, auctions []AuctionProperty) error
	FindAllAuctions(ctx context.Context) ([]AuctionProperty, error)
}
