package storefront

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

func TestCartAddItemThenRefresh(t *testing.T) {
	ctx := context.Background()

	var addBody map[string]any
	refreshes := 0
	server, client := newTestServer(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/cart/add":
			json.NewDecoder(r.Body).Decode(&addBody)
			w.Write([]byte(`{"ok":true}`))
		case "/api/cart":
			refreshes++
			w.Write([]byte(`[{"Qty":2,"Product":{"ID":5,"Name":"Mug","PriceCents":250,"ImageURL":"mug.png"}}]`))
		}
	})
	defer server.Close()

	renderer := &recordingCart{}
	status := &recordingStatus{}
	cart := NewCart(client, renderer, status)

	if err := cart.AddItem(ctx, 5, 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	if addBody["product_id"].(float64) != 5 || addBody["qty"].(float64) != 2 {
		t.Errorf("Unexpected add payload: %v", addBody)
	}
	if refreshes != 1 {
		t.Errorf("Expected exactly one refresh after add, got %d", refreshes)
	}
	if len(renderer.last) != 1 {
		t.Fatalf("Expected one rendered line, got %d", len(renderer.last))
	}
	if renderer.last[0].LineTotalCents != 500 {
		t.Errorf("Expected recomputed line total 500, got %d", renderer.last[0].LineTotalCents)
	}
	if len(status.successes) != 1 {
		t.Errorf("Expected a success message, got %v", status)
	}
}

func TestCartAddItemOfflineStillRefreshes(t *testing.T) {
	ctx := context.Background()
	client := deadClient()

	renderer := &recordingCart{}
	status := &recordingStatus{}
	cart := NewCart(client, renderer, status)

	err := cart.AddItem(ctx, 5, 1)
	if KindOf(err) != KindNetwork {
		t.Fatalf("Expected network_error, got %v", err)
	}

	// The follow-up refresh ran and independently failed; the rendered
	// cart reports unavailability instead of holding invalid lines.
	if len(renderer.unavailable) != 1 {
		t.Fatalf("Expected one unavailability report, got %v", renderer.unavailable)
	}
	if renderer.renders != 0 {
		t.Error("Expected no line render while offline")
	}
	if len(status.failures) != 1 {
		t.Fatalf("Expected one failure message, got %v", status.failures)
	}
	if want := "you may need to sign in"; !contains(status.failures[0], want) {
		t.Errorf("Expected auth hint in %q", status.failures[0])
	}
}

func TestCartAddItemValidatesQty(t *testing.T) {
	ctx := context.Background()

	requests := 0
	server, client := newTestServer(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`[]`))
	})
	defer server.Close()

	cart := NewCart(client, &recordingCart{}, &recordingStatus{})

	err := cart.AddItem(ctx, 5, 0)
	if KindOf(err) != KindValidation {
		t.Fatalf("Expected validation_error, got %v", err)
	}
	if requests != 0 {
		t.Errorf("Expected no network traffic for invalid qty, got %d requests", requests)
	}
}

func TestCartRefreshEmptyDistinctFromFailed(t *testing.T) {
	ctx := context.Background()

	server, client := newTestServer(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	defer server.Close()

	renderer := &recordingCart{}
	cart := NewCart(client, renderer, &recordingStatus{})

	lines, err := cart.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("Expected empty cart, got %d lines", len(lines))
	}
	if renderer.renders != 1 {
		t.Error("Expected an explicit empty render")
	}
	if len(renderer.unavailable) != 0 {
		t.Error("Empty cart must not report as unavailable")
	}
}

func TestCartRefreshFailureRendersUnavailable(t *testing.T) {
	ctx := context.Background()

	server, client := newTestServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"auth required"}`))
	})
	defer server.Close()

	renderer := &recordingCart{}
	cart := NewCart(client, renderer, &recordingStatus{})

	_, err := cart.Refresh(ctx)
	if KindOf(err) != KindServer {
		t.Fatalf("Expected server_error, got %v", err)
	}
	if renderer.renders != 0 {
		t.Error("Expected no line render on failure")
	}
	if len(renderer.unavailable) != 1 || !contains(renderer.unavailable[0], "auth required") {
		t.Errorf("Expected unavailability with server message, got %v", renderer.unavailable)
	}
}

func TestCartRefreshAuthFailureDropsStaleToken(t *testing.T) {
	ctx := context.Background()

	server, client := newTestServer(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token expired"}`))
	})
	defer server.Close()

	client.Tokens().Set("stale")
	cart := NewCart(client, &recordingCart{}, &recordingStatus{})

	_, err := cart.Refresh(ctx)
	if KindOf(err) != KindServer {
		t.Fatalf("Expected server_error, got %v", err)
	}
	if token, ok := client.Tokens().Get(); ok {
		t.Errorf("Expected rejected token to be cleared, still holding %q", token)
	}
}

func TestCartRefreshSkipsNonPositiveQty(t *testing.T) {
	ctx := context.Background()

	server, client := newTestServer(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"Qty":0,"Product":{"ID":1,"Name":"Ghost","PriceCents":100}},
			{"Qty":3,"Product":{"ID":2,"Name":"Mug","PriceCents":250}}
		]`))
	})
	defer server.Close()

	renderer := &recordingCart{}
	cart := NewCart(client, renderer, &recordingStatus{})

	lines, err := cart.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("Expected the zero-qty line to be dropped, got %d lines", len(lines))
	}
	if lines[0].LineTotalCents != 750 {
		t.Errorf("Expected total 750, got %d", lines[0].LineTotalCents)
	}
	for _, l := range lines {
		if l.LineTotalCents < 0 || l.Qty < 1 {
			t.Errorf("Rendered an invalid line: %+v", l)
		}
	}
}

func TestCartRefreshRejectsNonArrayResponse(t *testing.T) {
	ctx := context.Background()

	server, client := newTestServer(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	})
	defer server.Close()

	renderer := &recordingCart{}
	cart := NewCart(client, renderer, &recordingStatus{})

	_, err := cart.Refresh(ctx)
	if KindOf(err) != KindUnexpectedShape {
		t.Fatalf("Expected unexpected_shape, got %v", err)
	}
	if renderer.renders != 0 {
		t.Error("Expected no render on shape mismatch")
	}
}
