package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go-shien/internal/client"
	"go-shien/internal/payroll"
	"go-shien/internal/shared/response"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

// Demo deployments run without a database; this handler answers the read
// endpoints with fixed sample data so the frontend stays usable.

const sampleOrgID = "11111111-1111-1111-1111-111111111111"

var sampleClients = []client.ClientResponse{
	{
		ID:             "aaaaaaaa-0000-0000-0000-000000000001",
		OrganizationID: sampleOrgID,
		ClientNumber:   "C-001",
		Name:           "佐藤 花子",
		NameKana:       "サトウ ハナコ",
		Status:         "active",
	},
	{
		ID:             "aaaaaaaa-0000-0000-0000-000000000002",
		OrganizationID: sampleOrgID,
		ClientNumber:   "C-002",
		Name:           "鈴木 太郎",
		NameKana:       "スズキ タロウ",
		Status:         "active",
	},
	{
		ID:             "aaaaaaaa-0000-0000-0000-000000000003",
		OrganizationID: sampleOrgID,
		ClientNumber:   "C-003",
		Name:           "高橋 次郎",
		NameKana:       "タカハシ ジロウ",
		Status:         "exited",
	},
}

var sampleRuns = []payroll.PayrollRunResponse{
	{
		ID:             "bbbbbbbb-0000-0000-0000-000000000001",
		OrganizationID: sampleOrgID,
		PeriodStart:    "2026-07-01",
		PeriodEnd:      "2026-07-31",
		Status:         payroll.StatusPaid,
		LineCount:      2,
		TotalNet:       16010,
	},
	{
		ID:             "bbbbbbbb-0000-0000-0000-000000000002",
		OrganizationID: sampleOrgID,
		PeriodStart:    "2026-08-01",
		PeriodEnd:      "2026-08-31",
		Status:         payroll.StatusDraft,
		LineCount:      2,
		TotalNet:       14400,
	},
}

var sampleLines = []payroll.PayrollLineResponse{
	{
		ID:               "cccccccc-0000-0000-0000-000000000001",
		RunID:            "bbbbbbbb-0000-0000-0000-000000000002",
		ClientID:         "aaaaaaaa-0000-0000-0000-000000000001",
		WorkDays:         18,
		TotalMinutes:     5400,
		BaseAmount:       9000,
		PieceAmount:      0,
		DeductionsAmount: 0,
		NetAmount:        9000,
	},
	{
		ID:               "cccccccc-0000-0000-0000-000000000002",
		RunID:            "bbbbbbbb-0000-0000-0000-000000000002",
		ClientID:         "aaaaaaaa-0000-0000-0000-000000000002",
		WorkDays:         15,
		TotalMinutes:     4500,
		BaseAmount:       4500,
		PieceAmount:      1500,
		DeductionsAmount: 600,
		NetAmount:        5400,
	},
}

func respond(status int, envelope response.ApiEnvelope) (events.APIGatewayProxyResponse, error) {
	body, err := json.Marshal(envelope)
	if err != nil {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}, nil
}

func ok(data any) (events.APIGatewayProxyResponse, error) {
	return respond(http.StatusOK, response.ApiEnvelope{Ok: true, Data: data})
}

func notFound() (events.APIGatewayProxyResponse, error) {
	return respond(http.StatusNotFound, response.ApiEnvelope{
		Ok: false,
		Error: map[string]any{
			"code":    "NOT_FOUND",
			"message": "no mock data for this path",
		},
	})
}

func HandleRequest(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	path := strings.TrimPrefix(req.Path, "/api/v1")

	switch {
	case req.HTTPMethod == http.MethodGet && path == "/clients":
		return ok(sampleClients)

	case req.HTTPMethod == http.MethodGet && path == "/payroll-runs":
		return ok(sampleRuns)

	case req.HTTPMethod == http.MethodGet && strings.HasPrefix(path, "/payroll-runs/") && strings.HasSuffix(path, "/lines"):
		runID := strings.TrimSuffix(strings.TrimPrefix(path, "/payroll-runs/"), "/lines")
		lines := make([]payroll.PayrollLineResponse, 0, len(sampleLines))
		for _, l := range sampleLines {
			if l.RunID == runID {
				lines = append(lines, l)
			}
		}
		return ok(lines)

	case req.HTTPMethod == http.MethodGet && strings.HasPrefix(path, "/payroll-runs/"):
		runID := strings.TrimPrefix(path, "/payroll-runs/")
		for _, r := range sampleRuns {
			if r.ID == runID {
				return ok(r)
			}
		}
		return notFound()

	default:
		return notFound()
	}
}

func main() {
	lambda.Start(HandleRequest)
}
