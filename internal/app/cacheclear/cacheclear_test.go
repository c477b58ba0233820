package cacheclear_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/opsdd/ddx/internal/app/cacheclear"
	"github.com/opsdd/ddx/internal/backend"
	"github.com/opsdd/ddx/internal/backend/backendmock"
	"github.com/opsdd/ddx/internal/model"
)

func TestServiceRun(t *testing.T) {
	tests := map[string]struct {
		mock   func(mAPI *backendmock.MockAPI)
		expErr bool
		expMsg string
	}{
		"A confirmation message from the backend should be returned verbatim": {
			mock: func(mAPI *backendmock.MockAPI) {
				mAPI.On("Delete", mock.Anything, "/utility/cache").
					Once().Return(backend.SuccessOutcome(model.Document{"message": "cache flushed"}, ""))
			},
			expMsg: "cache flushed",
		},

		"A reply without a message should fall back to a default one": {
			mock: func(mAPI *backendmock.MockAPI) {
				mAPI.On("Delete", mock.Anything, "/utility/cache").
					Once().Return(backend.SuccessOutcome(model.Document{}, ""))
			},
			expMsg: "Backend cache cleared.",
		},

		"An unauthorized reply should fail": {
			mock: func(mAPI *backendmock.MockAPI) {
				mAPI.On("Delete", mock.Anything, "/utility/cache").
					Once().Return(backend.FailureOutcome(&backend.Failure{Kind: backend.FailureHTTP, Status: http.StatusForbidden}))
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			mAPI := &backendmock.MockAPI{}
			test.mock(mAPI)

			svc, err := cacheclear.NewService(cacheclear.ServiceConfig{Gateway: mAPI})
			require.NoError(t, err)

			msg, err := svc.Run(context.Background())

			if test.expErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, test.expMsg, msg)
			}

			mAPI.AssertExpectations(t)
		})
	}
}
