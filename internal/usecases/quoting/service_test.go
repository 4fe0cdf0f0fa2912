package quoting_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/usecases/quoting"
	"github.com/vfg2006/crm-api/internal/usecases/records"
	"github.com/vfg2006/crm-api/internal/usecases/records/mocks"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func ptr[T any](v T) *T {
	return &v
}

func TestTotals(t *testing.T) {
	tests := []struct {
		name      string
		items     domain.QuotationItems
		wantLines []float64
		wantSub   float64
		wantDisc  float64
		wantTax   float64
		wantGrand float64
		wantWords string
	}{
		{
			name: "imposto sobre o valor descontado",
			items: domain.QuotationItems{
				{Quantity: 2, UnitPrice: 500, DiscountPercent: 10, TaxRate: 18},
				{Quantity: 1, UnitPrice: 188},
			},
			wantLines: []float64{1062, 188},
			wantSub:   1188,
			wantDisc:  100,
			wantTax:   162,
			wantGrand: 1250,
			wantWords: "one thousand two hundred and fifty rupees",
		},
		{
			name: "centavos em algarismos",
			items: domain.QuotationItems{
				{Quantity: 1, UnitPrice: 1250.5},
			},
			wantLines: []float64{1250.5},
			wantSub:   1250.5,
			wantGrand: 1250.5,
			wantWords: "one thousand two hundred and fifty rupees and 50 paise",
		},
		{
			name: "arredondamento em duas casas",
			items: domain.QuotationItems{
				{Quantity: 3, UnitPrice: 0.1},
			},
			wantLines: []float64{0.3},
			wantSub:   0.3,
			wantGrand: 0.3,
			wantWords: "zero rupees and 30 paise",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &domain.Quotation{Items: tt.items}

			quoting.Totals(q)

			for i, want := range tt.wantLines {
				assert.InDelta(t, want, q.Items[i].LineTotal, 0.001, "linha %d", i)
			}
			assert.InDelta(t, tt.wantSub, q.Subtotal, 0.001)
			assert.InDelta(t, tt.wantDisc, q.DiscountTotal, 0.001)
			assert.InDelta(t, tt.wantTax, q.TaxTotal, 0.001)
			assert.InDelta(t, tt.wantGrand, q.GrandTotal, 0.001)
			assert.Equal(t, tt.wantWords, q.AmountInWords)
		})
	}
}

func TestHook_CompletaItensPeloProduto(t *testing.T) {
	ctrl := gomock.NewController(t)
	products := mocks.NewMockRecordService[domain.Product](ctrl)

	products.EXPECT().
		Get(gomock.Any(), "p-1").
		Return(&domain.Product{Name: "Microscópio", UnitPrice: 1000, TaxRate: 18}, nil).
		Times(1)

	q := &domain.Quotation{
		Items: domain.QuotationItems{
			{ProductID: ptr("p-1"), Quantity: 1},
			{ProductID: ptr("p-1"), Quantity: 2, UnitPrice: 900, Description: "Microscópio com desconto"},
			{Description: "Instalação", Quantity: 1, UnitPrice: 200},
		},
	}

	err := quoting.NewService(products).Hook(context.Background(), q, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "Microscópio", q.Items[0].Description)
	assert.Equal(t, 1000.0, q.Items[0].UnitPrice)
	assert.Equal(t, 18.0, q.Items[0].TaxRate)

	assert.Equal(t, "Microscópio com desconto", q.Items[1].Description)
	assert.Equal(t, 900.0, q.Items[1].UnitPrice)
	assert.Equal(t, 18.0, q.Items[1].TaxRate)

	assert.InDelta(t, 1180+2124+200, q.GrandTotal, 0.001)
	assert.NotEmpty(t, q.AmountInWords)
}

func TestHook_ProdutoInexistente(t *testing.T) {
	ctrl := gomock.NewController(t)
	products := mocks.NewMockRecordService[domain.Product](ctrl)

	products.EXPECT().
		Get(gomock.Any(), "p-404").
		Return(nil, records.NotFound(domain.KindProduct, "p-404"))

	q := &domain.Quotation{Items: domain.QuotationItems{{ProductID: ptr("p-404"), Quantity: 1}}}

	err := quoting.NewService(products).Hook(context.Background(), q, time.Now())

	require.Error(t, err)
	assert.ErrorIs(t, err, quoting.ErrProductNotFound)
	assert.Equal(t, apiErrors.ErrRelatedNotFound, records.Code(err))
}
