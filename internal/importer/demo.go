package importer

import (
	"context"
	"time"

	"github.com/cleared-dev/smsledger/internal/model"
)

// DemoSource serves a fixed batch of sample bank alerts, timestamped
// relative to the injected clock.
type DemoSource struct {
	now func() time.Time
}

// NewDemoSource returns a DemoSource. A nil clock means time.Now.
func NewDemoSource(now func() time.Time) *DemoSource {
	if now == nil {
		now = time.Now
	}
	return &DemoSource{now: now}
}

// Name returns the source name.
func (d *DemoSource) Name() string { return "demo" }

// IsSupported always reports true.
func (d *DemoSource) IsSupported() bool { return true }

// RequestAccess always grants access.
func (d *DemoSource) RequestAccess(context.Context) bool { return true }

// Messages returns the three sample alerts.
func (d *DemoSource) Messages(context.Context) ([]model.RawMessage, error) {
	now := d.now()
	return []model.RawMessage{
		{
			Body:      "Rs 450.00 debited from your account at SWIGGY on 08-Feb-26. Avl bal: Rs 15,234.50",
			Timestamp: now.Add(-time.Hour),
			Sender:    "HDFCBK",
		},
		{
			Body:      "Your A/c XX1234 debited with INR 1200.00 on 07-Feb-26 for Amazon transaction. Available balance: 14,034.50",
			Timestamp: now.Add(-24 * time.Hour),
			Sender:    "ICICIB",
		},
		{
			Body:      "Rs 85.00 spent at UBER on 07-Feb-26 via Card ending 5678. Avl bal: Rs 12,834.50",
			Timestamp: now.Add(-48 * time.Hour),
			Sender:    "SBIIN",
		},
	}, nil
}
