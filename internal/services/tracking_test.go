package services_test

import (
	"testing"

	"robomart/internal/services"
)

func placeTestOrder(t *testing.T, d *checkoutEnv) string {
	t.Helper()
	if err := d.Carts.Add("sess-track", "prd-linebot", 1); err != nil {
		t.Fatal(err)
	}
	placed, err := d.Checkout.Place("sess-track", "", keralaForm())
	if err != nil {
		t.Fatal(err)
	}
	return placed.Order.OrderNumber
}

func TestTrackingLookupProgress(t *testing.T) {
	d := memdb(t)
	number := placeTestOrder(t, d)
	track := services.NewTrackingService(d.Orders)

	res, err := track.Lookup("  " + number + " ")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Found || res.Cancelled {
		t.Fatalf("bad result: %+v", res)
	}
	// Fresh orders light only the pending stage.
	if len(res.Stages) != 4 || !res.Stages[0].Active || res.Stages[1].Active {
		t.Fatalf("bad stages: %+v", res.Stages)
	}

	// "dispatched" lights pending, confirmed and shipped.
	stored, err := d.Orders.GetByNumber(number)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Orders.UpdateStatus(stored.ID, "dispatched"); err != nil {
		t.Fatal(err)
	}
	res, err = track.Lookup(number)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []bool{true, true, true, false} {
		if res.Stages[i].Active != want {
			t.Fatalf("stage %d active=%v, want %v", i, res.Stages[i].Active, want)
		}
	}
}

func TestTrackingLookupNotFound(t *testing.T) {
	d := memdb(t)
	track := services.NewTrackingService(d.Orders)

	res, err := track.Lookup("ORD-DOESNOTEX")
	if err != nil {
		t.Fatal(err)
	}
	if res.Found {
		t.Fatal("unknown number should not be found")
	}
}

func TestTrackingLookupCancelled(t *testing.T) {
	d := memdb(t)
	number := placeTestOrder(t, d)
	track := services.NewTrackingService(d.Orders)

	stored, err := d.Orders.GetByNumber(number)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Orders.UpdateStatus(stored.ID, "cancelled"); err != nil {
		t.Fatal(err)
	}

	res, err := track.Lookup(number)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Found || !res.Cancelled {
		t.Fatalf("bad result: %+v", res)
	}
	for _, st := range res.Stages {
		if st.Active {
			t.Fatalf("cancelled orders must not light stages: %+v", res.Stages)
		}
	}
}
