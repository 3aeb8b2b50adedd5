package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/terraincognita07/finora/internal/models"
)

type InvestmentRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Investment, error)
	FindByID(ctx context.Context, userID uint, investmentID string) (models.Investment, bool, error)
	Create(ctx context.Context, investment *models.Investment) error
	Save(ctx context.Context, investment *models.Investment) error
	Delete(ctx context.Context, userID uint, investmentID string) (bool, error)
}

type InvestmentInput struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	AssetType   string `json:"asset_type"`
	Quantity    string `json:"quantity"`
	AvgBuyPrice string `json:"avg_buy_price"`
	Currency    string `json:"currency"`
}

type InvestmentPriceInput struct {
	CurrentPrice string `json:"current_price"`
}

// HoldingValue values a holding at its last entered price, falling back to the
// average buy price while no price has been entered.
type HoldingValue struct {
	models.Investment
	Invested     decimal.Decimal `json:"invested"`
	CurrentValue decimal.Decimal `json:"current_value"`
	Gain         decimal.Decimal `json:"gain"`
	GainPercent  decimal.Decimal `json:"gain_percent"`
}

type Portfolio struct {
	Holdings     []HoldingValue  `json:"holdings"`
	Invested     decimal.Decimal `json:"invested"`
	CurrentValue decimal.Decimal `json:"current_value"`
	Gain         decimal.Decimal `json:"gain"`
}

type InvestmentService struct {
	investments     InvestmentRepository
	defaultCurrency string
	now             func() time.Time
}

func NewInvestmentService(investments InvestmentRepository, defaultCurrency string) *InvestmentService {
	return &InvestmentService{investments: investments, defaultCurrency: defaultCurrency, now: time.Now}
}

// Portfolio lists every holding with its valuation and the totals across
// them. Totals mix currencies as entered; no conversion is applied.
func (service *InvestmentService) Portfolio(ctx context.Context, userID uint) (Portfolio, error) {
	investments, err := service.investments.ListByUser(ctx, userID)
	if err != nil {
		return Portfolio{}, err
	}

	portfolio := Portfolio{
		Holdings:     make([]HoldingValue, 0, len(investments)),
		Invested:     decimal.Zero,
		CurrentValue: decimal.Zero,
		Gain:         decimal.Zero,
	}
	for _, investment := range investments {
		holding := valueHolding(investment)
		portfolio.Holdings = append(portfolio.Holdings, holding)
		portfolio.Invested = portfolio.Invested.Add(holding.Invested)
		portfolio.CurrentValue = portfolio.CurrentValue.Add(holding.CurrentValue)
	}
	portfolio.Gain = portfolio.CurrentValue.Sub(portfolio.Invested)
	return portfolio, nil
}

func (service *InvestmentService) Create(ctx context.Context, userID uint, input InvestmentInput) (HoldingValue, error) {
	investment := models.Investment{UserID: userID}
	if err := service.applyInput(&investment, input); err != nil {
		return HoldingValue{}, err
	}
	if err := service.investments.Create(ctx, &investment); err != nil {
		return HoldingValue{}, err
	}
	return valueHolding(investment), nil
}

func (service *InvestmentService) Update(ctx context.Context, userID uint, investmentID string, input InvestmentInput) (HoldingValue, error) {
	investment, err := service.find(ctx, userID, investmentID)
	if err != nil {
		return HoldingValue{}, err
	}
	if err := service.applyInput(&investment, input); err != nil {
		return HoldingValue{}, err
	}
	if err := service.investments.Save(ctx, &investment); err != nil {
		return HoldingValue{}, err
	}
	return valueHolding(investment), nil
}

// UpdatePrice records a manually entered market price and stamps the time.
func (service *InvestmentService) UpdatePrice(ctx context.Context, userID uint, investmentID string, input InvestmentPriceInput) (HoldingValue, error) {
	investment, err := service.find(ctx, userID, investmentID)
	if err != nil {
		return HoldingValue{}, err
	}
	price, err := ParsePositiveAmount(input.CurrentPrice)
	if err != nil {
		return HoldingValue{}, err
	}
	updated := service.now().UTC()
	investment.CurrentPrice = &price
	investment.LastUpdated = &updated
	if err := service.investments.Save(ctx, &investment); err != nil {
		return HoldingValue{}, err
	}
	return valueHolding(investment), nil
}

func (service *InvestmentService) Delete(ctx context.Context, userID uint, investmentID string) error {
	deleted, err := service.investments.Delete(ctx, userID, investmentID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrInvestmentNotFound
	}
	return nil
}

func (service *InvestmentService) find(ctx context.Context, userID uint, investmentID string) (models.Investment, error) {
	investment, found, err := service.investments.FindByID(ctx, userID, investmentID)
	if err != nil {
		return models.Investment{}, err
	}
	if !found {
		return models.Investment{}, ErrInvestmentNotFound
	}
	return investment, nil
}

func (service *InvestmentService) applyInput(investment *models.Investment, input InvestmentInput) error {
	symbol := strings.ToUpper(strings.TrimSpace(input.Symbol))
	if symbol == "" {
		return ErrInvestmentSymbolRequired
	}
	assetType := strings.ToLower(strings.TrimSpace(input.AssetType))
	if assetType == "" {
		assetType = models.AssetTypeStock
	}
	if !models.IsValidAssetType(assetType) {
		return ErrInvestmentAssetTypeInvalid
	}
	quantity, err := parsePositiveQuantity(input.Quantity)
	if err != nil {
		return err
	}
	price, err := ParseAmount(input.AvgBuyPrice)
	if err != nil {
		return err
	}
	if price.IsNegative() {
		return ErrAmountInvalid
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = service.defaultCurrency
	}
	if !currencyCodeRegex.MatchString(currency) {
		return ErrInvestmentCurrencyInvalid
	}

	investment.Symbol = symbol
	investment.Name = strings.TrimSpace(input.Name)
	investment.AssetType = assetType
	investment.Quantity = quantity
	investment.AvgBuyPrice = price
	investment.Currency = currency
	return nil
}

// parsePositiveQuantity keeps fractional units such as crypto amounts, so it
// does not round to cents the way ParseAmount does.
func parsePositiveQuantity(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	quantity, err := decimal.NewFromString(cleaned)
	if err != nil || !quantity.IsPositive() {
		return decimal.Zero, ErrInvestmentQuantityInvalid
	}
	return quantity, nil
}

func valueHolding(investment models.Investment) HoldingValue {
	price := investment.AvgBuyPrice
	if investment.CurrentPrice != nil {
		price = *investment.CurrentPrice
	}
	invested := investment.Quantity.Mul(investment.AvgBuyPrice).Round(2)
	current := investment.Quantity.Mul(price).Round(2)
	gain := current.Sub(invested)
	percent := decimal.Zero
	if invested.IsPositive() {
		percent = gain.Div(invested).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return HoldingValue{
		Investment:   investment,
		Invested:     invested,
		CurrentValue: current,
		Gain:         gain,
		GainPercent:  percent,
	}
}
