package reportget_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/opsdd/ddx/internal/app/reportget"
	"github.com/opsdd/ddx/internal/backend"
	"github.com/opsdd/ddx/internal/backend/backendmock"
	"github.com/opsdd/ddx/internal/model"
)

func TestServiceRun(t *testing.T) {
	reportDoc := model.Document{"id": "r1", "company_name": "ACME"}

	tests := map[string]struct {
		mock     func(mAPI *backendmock.MockAPI)
		reportID string
		expErr   error
		exp      model.Document
	}{
		"An existing report should be returned as its raw document": {
			reportID: "r1",
			mock: func(mAPI *backendmock.MockAPI) {
				mAPI.On("Get", mock.Anything, "/reports/r1", mock.Anything).
					Once().Return(backend.SuccessOutcome(reportDoc, ""))
			},
			exp: reportDoc,
		},

		"A missing report should map to a not found error": {
			reportID: "nope",
			mock: func(mAPI *backendmock.MockAPI) {
				mAPI.On("Get", mock.Anything, "/reports/nope", mock.Anything).
					Once().Return(backend.FailureOutcome(&backend.Failure{Kind: backend.FailureHTTP, Status: http.StatusNotFound}))
			},
			expErr: model.ErrNotFound,
		},

		"An empty report ID should be rejected before calling the backend": {
			reportID: "",
			mock:     func(mAPI *backendmock.MockAPI) {},
			expErr:   model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			mAPI := &backendmock.MockAPI{}
			test.mock(mAPI)

			svc, err := reportget.NewService(reportget.ServiceConfig{Gateway: mAPI})
			require.NoError(t, err)

			got, err := svc.Run(context.Background(), test.reportID)

			if test.expErr != nil {
				assert.ErrorIs(t, err, test.expErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, test.exp, got)
			}

			mAPI.AssertExpectations(t)
		})
	}
}
