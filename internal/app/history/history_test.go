package history_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/opsdd/ddx/internal/app/history"
	"github.com/opsdd/ddx/internal/model"
	"github.com/opsdd/ddx/internal/storage/storagemock"
)

func TestServiceRun(t *testing.T) {
	now := time.Now()
	ops := []model.OperationRecord{
		{ID: "op2", Kind: model.OperationKindPDF, Subject: "r1", Status: model.OperationStatusCompleted, StartedAt: now},
		{ID: "op1", Kind: model.OperationKindAnalysis, Subject: "ACME", Status: model.OperationStatusFailed, Error: "timeout", StartedAt: now.Add(-time.Minute)},
	}

	tests := map[string]struct {
		mock   func(mRepo *storagemock.MockRepository)
		expErr bool
		exp    []model.OperationRecord
	}{
		"Recorded operations should be returned as stored": {
			mock: func(mRepo *storagemock.MockRepository) {
				mRepo.On("ListOperations", mock.Anything).Once().Return(ops, nil)
			},
			exp: ops,
		},

		"A storage failure should fail the listing": {
			mock: func(mRepo *storagemock.MockRepository) {
				mRepo.On("ListOperations", mock.Anything).Once().Return(nil, errors.New("db locked"))
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			mRepo := &storagemock.MockRepository{}
			test.mock(mRepo)

			svc, err := history.NewService(history.ServiceConfig{Repository: mRepo})
			require.NoError(t, err)

			got, err := svc.Run(context.Background())

			if test.expErr {
				assert.Error(t, err)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, test.exp, got)
			}

			mRepo.AssertExpectations(t)
		})
	}
}
