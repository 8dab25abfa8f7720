package main

import (
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/ndewijer/InvestBoard-Backend/internal/testutil"
)

func TestFetchEntity(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		memoryKey string
		wantErr   bool
	}{
		{name: "stock", args: []string{"stock", "tcs"}, memoryKey: "stock:TCS"},
		{name: "mutual fund", args: []string{"mutual-fund", "120503"}, memoryKey: "mf:120503"},
		{name: "ipo", args: []string{"ipo", "Acme Ltd"}, memoryKey: "ipo:Acme Ltd"},
		{name: "ipo list", args: []string{"ipo-list", "past"}, memoryKey: "ipo:list:past"},
		{name: "snapshot", args: []string{"snapshot"}, memoryKey: "market:snapshot"},
		{name: "missing identifier", args: []string{"stock"}, wantErr: true},
		{name: "unknown kind", args: []string{"bond", "X"}, wantErr: true},
		{name: "bad category", args: []string{"ipo-list", "recent"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, memory := testutil.NewTestMarketDataServiceWithStore(t, testutil.NewMockStore(), testutil.NewMockCompleter(`{"ok":true}`))
			cmd := &cobra.Command{}
			cmd.SetContext(context.Background())

			_, err := fetchEntity(cmd, svc, tt.args, false)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if _, ok := memory.Get(tt.memoryKey); !ok {
				t.Errorf("Expected memory key %s", tt.memoryKey)
			}
		})
	}
}
