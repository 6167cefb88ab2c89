package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/billtrack/billing-system/internal/core/domain"
	"github.com/billtrack/billing-system/internal/core/ports"
)

type stubBillRepo struct {
	bills map[string]*domain.Bill
	next  int
}

func newStubBillRepo() *stubBillRepo {
	return &stubBillRepo{bills: make(map[string]*domain.Bill)}
}

func (r *stubBillRepo) Create(_ context.Context, bill *domain.Bill) (*domain.Bill, error) {
	r.next++
	created := *bill
	created.ID = fmt.Sprintf("bill-%d", r.next)
	r.bills[created.ID] = &created
	clone := created
	return &clone, nil
}

func (r *stubBillRepo) FindByID(_ context.Context, id string) (*domain.Bill, error) {
	if b, ok := r.bills[id]; ok {
		clone := *b
		return &clone, nil
	}
	return nil, domain.ErrBillNotFound
}

func (r *stubBillRepo) List(_ context.Context, filter ports.BillFilter) ([]*domain.Bill, int64, error) {
	var matched []*domain.Bill
	for _, b := range r.bills {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(b.BillingHolder), needle) &&
				!strings.Contains(strings.ToLower(b.Phone), needle) &&
				!strings.Contains(strings.ToLower(b.Status), needle) {
				continue
			}
		}
		clone := *b
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	if filter.Limit > 0 {
		start := (filter.Page - 1) * filter.Limit
		if start > len(matched) {
			start = len(matched)
		}
		end := start + filter.Limit
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}
	return matched, total, nil
}

func (r *stubBillRepo) Update(_ context.Context, bill *domain.Bill) (*domain.Bill, error) {
	if _, ok := r.bills[bill.ID]; !ok {
		return nil, domain.ErrBillNotFound
	}
	clone := *bill
	r.bills[bill.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubBillRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.bills[id]; !ok {
		return domain.ErrBillNotFound
	}
	delete(r.bills, id)
	return nil
}

func testDateline() time.Time {
	return time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
}

func TestBillService_Create_DefaultsToUnpaid(t *testing.T) {
	svc := NewBillService(newStubBillRepo(), zerolog.Nop())

	bill, err := svc.CreateBill(context.Background(), ports.CreateBillInput{
		BillingHolder: "John Doe", Phone: "555-0101", Amount: 120.50,
		Dateline: testDateline(), AttacherID: "user-1",
	})
	if err != nil {
		t.Fatalf("CreateBill: %v", err)
	}
	if bill.Status != domain.BillStatusUnpaid {
		t.Fatalf("status = %q, want Unpaid", bill.Status)
	}
	if bill.BillAttacher != "user-1" {
		t.Fatalf("attacher = %q, want user-1", bill.BillAttacher)
	}
	if bill.ID == "" {
		t.Fatalf("expected assigned id")
	}
}

func TestBillService_Create_InvalidStatus(t *testing.T) {
	svc := NewBillService(newStubBillRepo(), zerolog.Nop())

	_, err := svc.CreateBill(context.Background(), ports.CreateBillInput{
		BillingHolder: "X", Phone: "1", Amount: 1, Status: "Overdue", Dateline: testDateline(),
	})
	if err != domain.ErrInvalidBillStatus {
		t.Fatalf("expected ErrInvalidBillStatus, got %v", err)
	}
}

func seedBills(t *testing.T, svc *BillService) {
	t.Helper()
	for i, in := range []ports.CreateBillInput{
		{BillingHolder: "Alice", Phone: "100", Amount: 50, Status: domain.BillStatusPaid},
		{BillingHolder: "Bob", Phone: "200", Amount: 75, Status: domain.BillStatusUnpaid},
		{BillingHolder: "Carla", Phone: "300", Amount: 25, Status: domain.BillStatusUnpaid},
	} {
		in.Dateline = testDateline()
		if _, err := svc.CreateBill(context.Background(), in); err != nil {
			t.Fatalf("seed bill %d: %v", i, err)
		}
	}
}

func TestBillService_List_TotalsAndPagination(t *testing.T) {
	svc := NewBillService(newStubBillRepo(), zerolog.Nop())
	seedBills(t, svc)

	result, err := svc.ListBills(context.Background(), ports.BillFilter{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("ListBills: %v", err)
	}
	if len(result.Bills) != 2 {
		t.Fatalf("page size = %d, want 2", len(result.Bills))
	}
	if result.Total != 3 {
		t.Fatalf("total = %d, want 3", result.Total)
	}
	if result.PaidAmount != 50 {
		t.Fatalf("paid amount = %v, want 50", result.PaidAmount)
	}
	if result.UnpaidAmount != 100 {
		t.Fatalf("unpaid amount = %v, want 100", result.UnpaidAmount)
	}
}

func TestBillService_List_StatusFilterAndSearch(t *testing.T) {
	svc := NewBillService(newStubBillRepo(), zerolog.Nop())
	seedBills(t, svc)

	unpaid, err := svc.ListBills(context.Background(), ports.BillFilter{Status: domain.BillStatusUnpaid})
	if err != nil {
		t.Fatalf("ListBills unpaid: %v", err)
	}
	if unpaid.Total != 2 {
		t.Fatalf("unpaid total = %d, want 2", unpaid.Total)
	}

	search, err := svc.ListBills(context.Background(), ports.BillFilter{Search: "ali"})
	if err != nil {
		t.Fatalf("ListBills search: %v", err)
	}
	if search.Total != 1 || search.Bills[0].BillingHolder != "Alice" {
		t.Fatalf("search result = %+v", search.Bills)
	}

	if _, err := svc.ListBills(context.Background(), ports.BillFilter{Status: "Overdue"}); err != domain.ErrInvalidBillStatus {
		t.Fatalf("expected ErrInvalidBillStatus, got %v", err)
	}
}

func TestBillService_Update(t *testing.T) {
	repo := newStubBillRepo()
	svc := NewBillService(repo, zerolog.Nop())
	created, _ := svc.CreateBill(context.Background(), ports.CreateBillInput{
		BillingHolder: "Dana", Phone: "400", Amount: 10, Dateline: testDateline(),
	})

	updated, err := svc.UpdateBill(context.Background(), ports.UpdateBillInput{
		ID: created.ID, BillingHolder: "Dana", Phone: "400", Amount: 10,
		Status: domain.BillStatusPaid, Dateline: testDateline(),
	})
	if err != nil {
		t.Fatalf("UpdateBill: %v", err)
	}
	if updated.Status != domain.BillStatusPaid {
		t.Fatalf("status = %q, want Paid", updated.Status)
	}

	if _, err := svc.UpdateBill(context.Background(), ports.UpdateBillInput{
		ID: "missing", BillingHolder: "X", Phone: "1", Amount: 1,
		Status: domain.BillStatusPaid, Dateline: testDateline(),
	}); err != domain.ErrBillNotFound {
		t.Fatalf("expected ErrBillNotFound, got %v", err)
	}
}

func TestBillService_Delete(t *testing.T) {
	svc := NewBillService(newStubBillRepo(), zerolog.Nop())
	created, _ := svc.CreateBill(context.Background(), ports.CreateBillInput{
		BillingHolder: "Ed", Phone: "500", Amount: 5, Dateline: testDateline(),
	})

	if err := svc.DeleteBill(context.Background(), created.ID); err != nil {
		t.Fatalf("DeleteBill: %v", err)
	}
	if _, err := svc.GetBill(context.Background(), created.ID); err != domain.ErrBillNotFound {
		t.Fatalf("expected ErrBillNotFound after delete, got %v", err)
	}
	if err := svc.DeleteBill(context.Background(), created.ID); err != domain.ErrBillNotFound {
		t.Fatalf("expected ErrBillNotFound on double delete, got %v", err)
	}
}
