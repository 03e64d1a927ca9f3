package grpc

import (
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/wealthtrack-backend/internal/domain"
	"github.com/simaogato/wealthtrack-backend/internal/usecase/portfolio"
	"github.com/simaogato/wealthtrack-backend/internal/usecase/projection"
)

const dateLayout = "2006-01-02"

// Unreachable is the completion_date value of a goal that is not met within its horizon
const Unreachable = "unreachable"

func field(req *structpb.Struct, key string) (*structpb.Value, bool) {
	v, ok := req.GetFields()[key]
	if !ok {
		return nil, false
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil, false
	}
	return v, true
}

func stringField(req *structpb.Struct, key string) string {
	v, ok := field(req, key)
	if !ok {
		return ""
	}
	return v.GetStringValue()
}

func requiredUUID(req *structpb.Struct, key string) (uuid.UUID, error) {
	raw := stringField(req, key)
	if raw == "" {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "%s is required", key)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", key, err)
	}
	return id, nil
}

// optionalDecimal accepts a decimal string or a JSON number
func optionalDecimal(req *structpb.Struct, key string) (*decimal.Decimal, error) {
	v, ok := field(req, key)
	if !ok {
		return nil, nil
	}

	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		d, err := decimal.NewFromString(kind.StringValue)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", key, err)
		}
		return &d, nil
	case *structpb.Value_NumberValue:
		if math.IsNaN(kind.NumberValue) || math.IsInf(kind.NumberValue, 0) {
			return nil, status.Errorf(codes.InvalidArgument, "%s must be a finite number", key)
		}
		d := decimal.NewFromFloat(kind.NumberValue)
		return &d, nil
	default:
		return nil, status.Errorf(codes.InvalidArgument, "%s must be a decimal string", key)
	}
}

func requiredDecimal(req *structpb.Struct, key string) (decimal.Decimal, error) {
	d, err := optionalDecimal(req, key)
	if err != nil {
		return decimal.Zero, err
	}
	if d == nil {
		return decimal.Zero, status.Errorf(codes.InvalidArgument, "%s is required", key)
	}
	return *d, nil
}

func decimalOrZero(req *structpb.Struct, key string) (decimal.Decimal, error) {
	d, err := optionalDecimal(req, key)
	if err != nil || d == nil {
		return decimal.Zero, err
	}
	return *d, nil
}

func optionalInt(req *structpb.Struct, key string) (*int, error) {
	v, ok := field(req, key)
	if !ok {
		return nil, nil
	}

	switch kind := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		x := kind.NumberValue
		if math.IsInf(x, 0) || x != math.Trunc(x) {
			return nil, status.Errorf(codes.InvalidArgument, "%s must be an integer", key)
		}
		if x < math.MinInt32 || x > math.MaxInt32 {
			return nil, status.Errorf(codes.InvalidArgument, "%s is out of range", key)
		}
		n := int(x)
		return &n, nil
	case *structpb.Value_StringValue:
		parsed, err := strconv.ParseInt(kind.StringValue, 10, 32)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", key, err)
		}
		n := int(parsed)
		return &n, nil
	default:
		return nil, status.Errorf(codes.InvalidArgument, "%s must be an integer", key)
	}
}

func optionalTime(req *structpb.Struct, key string) (time.Time, error) {
	raw := stringField(req, key)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", key, err)
	}
	return t, nil
}

func summaryToMap(s *portfolio.Summary) map[string]interface{} {
	allocation := make([]interface{}, 0, len(s.Allocation))
	for _, item := range s.Allocation {
		allocation = append(allocation, map[string]interface{}{
			"asset_class": item.AssetClass,
			"value":       item.TotalValue.String(),
			"percentage":  item.Percentage.String(),
		})
	}

	return map[string]interface{}{
		"total_invested":      s.TotalInvested.String(),
		"total_current_value": s.TotalCurrentValue.String(),
		"total_profit_loss":   s.TotalProfitLoss.String(),
		"total_value":         s.TotalValue.String(),
		"allocation":          allocation,
	}
}

func positionToMap(p *domain.InvestmentPosition) map[string]interface{} {
	m := map[string]interface{}{
		"id":            p.ID.String(),
		"symbol":        p.Symbol,
		"asset_type":    string(p.AssetType),
		"units":         p.Units.String(),
		"avg_buy_price": p.AvgBuyPrice.String(),
		"cost_basis":    p.CostBasis().String(),
		"current_value": p.CurrentValue().String(),
	}
	if p.LastPrice != nil {
		m["last_price"] = p.LastPrice.String()
	}
	if p.LastPriceAt != nil {
		m["last_price_at"] = p.LastPriceAt.UTC().Format(time.RFC3339)
	}
	return m
}

func goalToMap(g domain.Goal) map[string]interface{} {
	return map[string]interface{}{
		"id":                   g.ID.String(),
		"goal_type":            g.GoalType,
		"target_amount":        g.TargetAmount.String(),
		"target_date":          g.TargetDate.Format(dateLayout),
		"monthly_contribution": g.MonthlyContribution.String(),
		"status":               string(g.Status),
	}
}

func paramsToMap(p projection.Params) map[string]interface{} {
	return map[string]interface{}{
		"target_amount":         p.TargetAmount.String(),
		"current_amount":        p.CurrentAmount.String(),
		"monthly_contribution":  p.MonthlyContribution.String(),
		"annual_return_percent": p.AnnualReturnPercent.String(),
		"time_horizon_years":    p.TimeHorizonYears,
	}
}

func resultToMap(r *projection.Result) map[string]interface{} {
	series := make([]interface{}, 0, len(r.Series))
	for _, point := range r.Series {
		series = append(series, map[string]interface{}{
			"period_index":    point.PeriodIndex,
			"projected_value": point.ProjectedValue.String(),
			"target_value":    point.TargetValue.String(),
		})
	}

	m := map[string]interface{}{
		"series":          series,
		"achievable":      r.Achievable,
		"final_value":     r.FinalValue.String(),
		"completion_date": Unreachable,
	}
	if r.Completion.Reached {
		m["completion_date"] = r.Completion.Date.UTC().Format(time.RFC3339)
		m["completion_month"] = r.Completion.Month
	}
	return m
}

func newStruct(m map[string]interface{}) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return out, nil
}
