// Package validate holds the client-side pre-submission checks. They are
// advisory: the backend stays the source of truth and its rejections are
// surfaced through the normal error channel.
package validate

import (
	"strconv"
	"strings"
	"time"

	"github.com/mkvist/hatchctl/internal/domain"
)

// maxDescriptionLen bounds free-text description fields.
const maxDescriptionLen = 500

// Result is the outcome of validating one form's field values.
type Result struct {
	Valid  bool
	Errors map[string]string
}

type checker struct {
	errors map[string]string
}

func newChecker() *checker {
	return &checker{errors: make(map[string]string)}
}

func (c *checker) result() Result {
	return Result{Valid: len(c.errors) == 0, Errors: c.errors}
}

func (c *checker) required(field, value, label string) {
	if strings.TrimSpace(value) == "" {
		c.errors[field] = label + " is required"
	}
}

func (c *checker) positiveInt(field, value, label string) {
	if value == "" {
		c.errors[field] = label + " is required"
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		c.errors[field] = label + " must be a positive number"
	}
}

func (c *checker) positiveFloat(field, value, label string) {
	if value == "" {
		c.errors[field] = label + " is required"
		return
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || f <= 0 {
		c.errors[field] = label + " must be a positive number"
	}
}

func (c *checker) maxLen(field, value, label string, limit int) {
	if len(value) > limit {
		c.errors[field] = label + " must be at most " + strconv.Itoa(limit) + " characters"
	}
}

func (c *checker) oneOf(field, value, label string, valid map[string]bool) {
	if value != "" && !valid[value] {
		c.errors[field] = label + " is not a valid value"
	}
}

func (c *checker) date(field, value, label string) {
	if value == "" {
		return
	}
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(value)); err != nil {
		c.errors[field] = label + " must be a date (YYYY-MM-DD)"
	}
}

// Asset validates asset form fields.
func Asset(fields map[string]string) Result {
	c := newChecker()
	c.required("name", fields["name"], "Name")
	c.required("category", fields["category"], "Category")
	c.oneOf("category", fields["category"], "Category", domain.ValidAssetCategories)
	c.oneOf("status", fields["status"], "Status", domain.ValidAssetStatuses)
	c.positiveInt("quantity", fields["quantity"], "Quantity")
	c.positiveFloat("cost", fields["cost"], "Cost")
	c.maxLen("description", fields["description"], "Description", maxDescriptionLen)
	c.date("purchaseDate", fields["purchaseDate"], "Purchase date")
	return c.result()
}

// Feedstock validates feedstock form fields.
func Feedstock(fields map[string]string) Result {
	c := newChecker()
	c.required("name", fields["name"], "Name")
	c.required("categoryId", fields["categoryId"], "Category")
	c.required("unit", fields["unit"], "Unit")
	c.positiveFloat("quantity", fields["quantity"], "Quantity")
	return c.result()
}

// Pool validates parent fish pool form fields.
func Pool(fields map[string]string) Result {
	c := newChecker()
	c.required("name", fields["name"], "Name")
	c.required("species", fields["species"], "Species")
	c.oneOf("status", fields["status"], "Status", domain.ValidPoolStatuses)
	c.positiveInt("capacity", fields["capacity"], "Capacity")
	return c.result()
}

// Migration validates egg migration form fields.
func Migration(fields map[string]string) Result {
	c := newChecker()
	c.required("poolId", fields["poolId"], "Pool")
	c.required("destination", fields["destination"], "Destination")
	c.required("date", fields["date"], "Date")
	c.date("date", fields["date"], "Date")
	c.positiveInt("eggCount", fields["eggCount"], "Egg count")
	c.maxLen("notes", fields["notes"], "Notes", maxDescriptionLen)
	return c.result()
}

// Feeding validates feeding record form fields (both feeding resources).
func Feeding(fields map[string]string) Result {
	c := newChecker()
	c.required("poolId", fields["poolId"], "Pool")
	c.required("feedId", fields["feedId"], "Feed")
	c.required("date", fields["date"], "Date")
	c.date("date", fields["date"], "Date")
	c.positiveFloat("quantity", fields["quantity"], "Quantity")
	c.maxLen("notes", fields["notes"], "Notes", maxDescriptionLen)
	return c.result()
}
