package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHolding_Validate(t *testing.T) {
	tests := []struct {
		name    string
		holding Holding
		wantErr bool
		errMsg  string
	}{
		{
			name: "Valid stock holding should pass",
			holding: Holding{
				PortfolioID:   1,
				Symbol:        "AAPL",
				AssetType:     AssetTypeStock,
				Quantity:      decimal.NewFromInt(10),
				PurchasePrice: decimal.NewFromInt(150),
			},
			wantErr: false,
		},
		{
			name: "Valid crypto holding with fractional quantity should pass",
			holding: Holding{
				PortfolioID:   1,
				Symbol:        "BTC-USD",
				AssetType:     AssetTypeCrypto,
				Quantity:      decimal.RequireFromString("0.00012345"),
				PurchasePrice: decimal.RequireFromString("43210.87654321"),
			},
			wantErr: false,
		},
		{
			name: "Holding without portfolio reference should fail",
			holding: Holding{
				Symbol:        "AAPL",
				AssetType:     AssetTypeStock,
				Quantity:      decimal.NewFromInt(10),
				PurchasePrice: decimal.NewFromInt(150),
			},
			wantErr: true,
			errMsg:  "holding must reference a portfolio",
		},
		{
			name: "Holding with empty symbol should fail",
			holding: Holding{
				PortfolioID:   1,
				AssetType:     AssetTypeStock,
				Quantity:      decimal.NewFromInt(10),
				PurchasePrice: decimal.NewFromInt(150),
			},
			wantErr: true,
			errMsg:  "holding symbol cannot be empty",
		},
		{
			name: "Holding with unknown asset type should fail",
			holding: Holding{
				PortfolioID:   1,
				Symbol:        "AAPL",
				AssetType:     AssetType("bond"),
				Quantity:      decimal.NewFromInt(10),
				PurchasePrice: decimal.NewFromInt(150),
			},
			wantErr: true,
			errMsg:  "holding asset type must be stock or crypto",
		},
		{
			name: "Holding with zero quantity should fail",
			holding: Holding{
				PortfolioID:   1,
				Symbol:        "AAPL",
				AssetType:     AssetTypeStock,
				Quantity:      decimal.Zero,
				PurchasePrice: decimal.NewFromInt(150),
			},
			wantErr: true,
			errMsg:  "holding quantity must be positive",
		},
		{
			name: "Holding with negative quantity should fail",
			holding: Holding{
				PortfolioID:   1,
				Symbol:        "AAPL",
				AssetType:     AssetTypeStock,
				Quantity:      decimal.NewFromInt(-1),
				PurchasePrice: decimal.NewFromInt(150),
			},
			wantErr: true,
			errMsg:  "holding quantity must be positive",
		},
		{
			name: "Holding with zero purchase price should fail",
			holding: Holding{
				PortfolioID:   1,
				Symbol:        "AAPL",
				AssetType:     AssetTypeStock,
				Quantity:      decimal.NewFromInt(10),
				PurchasePrice: decimal.Zero,
			},
			wantErr: true,
			errMsg:  "holding purchase price must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.holding.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPortfolio_Validate(t *testing.T) {
	tests := []struct {
		name      string
		portfolio Portfolio
		wantErr   bool
	}{
		{
			name:      "Portfolio with name should pass",
			portfolio: Portfolio{Name: "Retirement"},
			wantErr:   false,
		},
		{
			name:      "Portfolio without name should fail",
			portfolio: Portfolio{Description: "no name"},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.portfolio.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"aapl", "AAPL"},
		{"AAPL", "AAPL"},
		{" btc-usd ", "BTC-USD"},
		{"Googl", "GOOGL"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeSymbol(tt.input))
	}
}
