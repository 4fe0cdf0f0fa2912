package quoting

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vfg2006/crm-api/internal/domain"
	"github.com/vfg2006/crm-api/internal/usecases/records"
	"github.com/vfg2006/crm-api/pkg/apiErrors"
	"github.com/vfg2006/crm-api/pkg/utils"
)

const (
	Currency = "rupees"
	Subunit  = "paise"
)

var ErrProductNotFound = errors.New("product not found")

// ProductFinder é o subconjunto do serviço de produtos usado para completar os itens
type ProductFinder interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
}

type Service struct {
	products ProductFinder
}

func NewService(products ProductFinder) *Service {
	return &Service{products: products}
}

// Hook completa preço, imposto e descrição dos itens pelo produto e recalcula os totais
func (s *Service) Hook(ctx context.Context, q *domain.Quotation, _ time.Time) error {
	cache := map[string]*domain.Product{}

	for i := range q.Items {
		item := &q.Items[i]
		if item.ProductID == nil || *item.ProductID == "" {
			continue
		}
		if item.UnitPrice > 0 && item.TaxRate > 0 && item.Description != "" {
			continue
		}

		product, ok := cache[*item.ProductID]
		if !ok {
			p, err := s.products.Get(ctx, *item.ProductID)
			if err != nil {
				if errors.Is(err, records.ErrNotFound) {
					return records.NewRecordErrorWithID(ErrProductNotFound, apiErrors.ErrRelatedNotFound,
						domain.KindQuotation, q.ID, "items product_id "+*item.ProductID)
				}
				return err
			}
			cache[*item.ProductID] = p
			product = p
		}

		Fill(item, product)
	}

	Totals(q)
	return nil
}

// Fill usa os valores do produto apenas nos campos que vieram vazios
func Fill(item *domain.QuotationItem, product *domain.Product) {
	if item.UnitPrice == 0 {
		item.UnitPrice = product.UnitPrice
	}
	if item.TaxRate == 0 {
		item.TaxRate = product.TaxRate
	}
	if strings.TrimSpace(item.Description) == "" {
		item.Description = product.Name
	}
}

// Totals recalcula linhas, totais e o valor por extenso
func Totals(q *domain.Quotation) {
	q.Compute()
	q.AmountInWords = utils.AmountInWords(q.GrandTotal, Currency, Subunit)
}
