package grpc

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/simaogato/wealthtrack-backend/internal/domain"
	"github.com/simaogato/wealthtrack-backend/internal/usecase/dashboard"
	"github.com/simaogato/wealthtrack-backend/internal/usecase/goal"
	"github.com/simaogato/wealthtrack-backend/internal/usecase/investment"
	"github.com/simaogato/wealthtrack-backend/internal/usecase/ledger"
	"github.com/simaogato/wealthtrack-backend/internal/usecase/portfolio"
)

// Server implements the EngineService gRPC server
type Server struct {
	PortfolioService  *portfolio.PortfolioService
	GoalService       *goal.GoalService
	DashboardService  *dashboard.DashboardService
	LedgerService     *ledger.LedgerService
	InvestmentService *investment.InvestmentService
}

var _ EngineServiceServer = (*Server)(nil)

// NewServer creates a new gRPC server instance
func NewServer(
	portfolioService *portfolio.PortfolioService,
	goalService *goal.GoalService,
	dashboardService *dashboard.DashboardService,
	ledgerService *ledger.LedgerService,
	investmentService *investment.InvestmentService,
) *Server {
	return &Server{
		PortfolioService:  portfolioService,
		GoalService:       goalService,
		DashboardService:  dashboardService,
		LedgerService:     ledgerService,
		InvestmentService: investmentService,
	}
}

// GetPortfolioSummary handles the GetPortfolioSummary RPC
func (s *Server) GetPortfolioSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ownerID, err := requiredUUID(req, "owner_id")
	if err != nil {
		return nil, err
	}

	summary, err := s.PortfolioService.GetSummary(ctx, ownerID)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(summaryToMap(summary))
}

// SimulateGoal handles the SimulateGoal RPC
// Optional fields override what is seeded from the stored goal
func (s *Server) SimulateGoal(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	goalID, err := requiredUUID(req, "goal_id")
	if err != nil {
		return nil, err
	}

	input := goal.SimulateGoalInput{GoalID: goalID}
	if input.TargetAmount, err = optionalDecimal(req, "target_amount"); err != nil {
		return nil, err
	}
	if input.CurrentAmount, err = optionalDecimal(req, "current_amount"); err != nil {
		return nil, err
	}
	if input.MonthlyContribution, err = optionalDecimal(req, "monthly_contribution"); err != nil {
		return nil, err
	}
	if input.AnnualReturnPercent, err = optionalDecimal(req, "annual_return_percent"); err != nil {
		return nil, err
	}
	if input.TimeHorizonYears, err = optionalInt(req, "time_horizon_years"); err != nil {
		return nil, err
	}
	interval, err := optionalInt(req, "sample_every_months")
	if err != nil {
		return nil, err
	}
	if interval != nil {
		input.SampleEveryMonths = *interval
	}

	out, err := s.GoalService.SimulateGoal(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	resp := resultToMap(out.Result)
	resp["goal_id"] = out.Goal.ID.String()
	resp["params"] = paramsToMap(out.Params)
	return newStruct(resp)
}

// GetDashboardSummary handles the GetDashboardSummary RPC
func (s *Server) GetDashboardSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ownerID, err := requiredUUID(req, "owner_id")
	if err != nil {
		return nil, err
	}

	result, err := s.DashboardService.GetSummary(ctx, ownerID)
	if err != nil {
		return nil, mapError(err)
	}

	goals := make([]interface{}, 0, len(result.Goals))
	for _, g := range result.Goals {
		goals = append(goals, goalToMap(g))
	}

	return newStruct(map[string]interface{}{
		"portfolio":          summaryToMap(result.Portfolio),
		"active_goals_count": result.ActiveGoalsCount,
		"goals":              goals,
	})
}

// RecordTransaction handles the RecordTransaction RPC
func (s *Server) RecordTransaction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ownerID, err := requiredUUID(req, "owner_id")
	if err != nil {
		return nil, err
	}

	input := ledger.RecordTransactionInput{
		OwnerID:   ownerID,
		Type:      domain.TransactionType(strings.ToLower(stringField(req, "type"))),
		Symbol:    stringField(req, "symbol"),
		AssetType: domain.AssetType(strings.ToLower(stringField(req, "asset_type"))),
	}
	if input.Quantity, err = requiredDecimal(req, "quantity"); err != nil {
		return nil, err
	}
	if input.Price, err = requiredDecimal(req, "price"); err != nil {
		return nil, err
	}
	if input.Fees, err = decimalOrZero(req, "fees"); err != nil {
		return nil, err
	}
	if input.ExecutedAt, err = optionalTime(req, "executed_at"); err != nil {
		return nil, err
	}

	result, err := s.LedgerService.RecordTransaction(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}

	resp := map[string]interface{}{
		"transaction_id":   result.Transaction.ID.String(),
		"executed_at":      result.Transaction.ExecutedAt.UTC().Format(time.RFC3339),
		"position_removed": result.Outcome.Removed,
	}
	if result.Outcome.Position != nil && !result.Outcome.Removed {
		resp["position"] = positionToMap(result.Outcome.Position)
	}
	return newStruct(resp)
}

// RefreshPrices handles the RefreshPrices RPC
func (s *Server) RefreshPrices(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	ownerID, err := requiredUUID(req, "owner_id")
	if err != nil {
		return nil, err
	}

	report, err := s.InvestmentService.RefreshPrices(ctx, ownerID)
	if err != nil {
		return nil, mapError(err)
	}

	failed := make(map[string]interface{}, len(report.Failed))
	for symbol, quoteErr := range report.Failed {
		failed[symbol] = quoteErr.Error()
	}

	return newStruct(map[string]interface{}{
		"updated": report.Updated,
		"failed":  failed,
	})
}

// UpdatePrice handles the UpdatePrice RPC
func (s *Server) UpdatePrice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	positionID, err := requiredUUID(req, "position_id")
	if err != nil {
		return nil, err
	}
	price, err := requiredDecimal(req, "price")
	if err != nil {
		return nil, err
	}

	position, err := s.InvestmentService.UpdatePrice(ctx, positionID, price)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]interface{}{"position": positionToMap(position)})
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	var positionErr *domain.InvalidPositionError
	var goalErr *domain.InvalidGoalParametersError
	var txErr *domain.InvalidTransactionError
	switch {
	case errors.As(err, &positionErr), errors.As(err, &goalErr), errors.As(err, &txErr):
		return status.Errorf(codes.InvalidArgument, "%s", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Errorf(codes.NotFound, "%s", err.Error())
	case errors.Is(err, context.Canceled):
		return status.Errorf(codes.Canceled, "%s", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Errorf(codes.DeadlineExceeded, "%s", err.Error())
	}

	// Plain validation errors from the services
	if strings.Contains(err.Error(), "must be positive") {
		return status.Errorf(codes.InvalidArgument, "%s", err.Error())
	}
	if strings.Contains(err.Error(), "no price feed configured") {
		return status.Errorf(codes.FailedPrecondition, "%s", err.Error())
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", err.Error())
}
