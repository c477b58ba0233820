package reportlist_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/opsdd/ddx/internal/app/reportlist"
	"github.com/opsdd/ddx/internal/backend"
	"github.com/opsdd/ddx/internal/backend/backendmock"
	"github.com/opsdd/ddx/internal/model"
	"github.com/opsdd/ddx/internal/session"
)

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		mock   func(mAPI *backendmock.MockAPI)
		expErr bool
		exp    []model.ReportSummary
	}{
		"A listing with reports should map every entry": {
			mock: func(mAPI *backendmock.MockAPI) {
				doc := model.Document{
					"reports": []interface{}{
						map[string]interface{}{
							"id":           "r1",
							"company_name": "ACME",
							"status":       "completed",
							"created_at":   "2026-08-01T10:00:00Z",
						},
						map[string]interface{}{
							"id":           "r2",
							"company_name": "Globex",
							"status":       "running",
						},
					},
				}
				mAPI.On("Get", mock.Anything, "/reports", mock.Anything).
					Once().Return(backend.SuccessOutcome(doc, ""))
			},
			exp: []model.ReportSummary{
				{
					ID:          "r1",
					CompanyName: "ACME",
					Status:      "completed",
					CreatedAt:   time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
				},
				{ID: "r2", CompanyName: "Globex", Status: "running"},
			},
		},

		"An empty listing should return an empty slice": {
			mock: func(mAPI *backendmock.MockAPI) {
				mAPI.On("Get", mock.Anything, "/reports", mock.Anything).
					Once().Return(backend.SuccessOutcome(model.Document{"reports": []interface{}{}}, ""))
			},
			exp: []model.ReportSummary{},
		},

		"A backend failure should fail the listing": {
			mock: func(mAPI *backendmock.MockAPI) {
				mAPI.On("Get", mock.Anything, "/reports", mock.Anything).
					Once().Return(backend.FailureOutcome(&backend.Failure{Kind: backend.FailureTimeout, Detail: "too slow"}))
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			mAPI := &backendmock.MockAPI{}
			test.mock(mAPI)

			sess := session.New()
			svc, err := reportlist.NewService(reportlist.ServiceConfig{
				Gateway: mAPI,
				Session: sess,
			})
			require.NoError(t, err)

			got, err := svc.Run(context.Background())

			if test.expErr {
				assert.Error(t, err)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, test.exp, got)
				assert.Equal(t, test.exp, sess.Reports())
			}

			mAPI.AssertExpectations(t)
		})
	}
}
