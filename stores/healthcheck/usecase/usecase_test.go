package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/x-xyz/settlement/base/ctx"
	"github.com/x-xyz/settlement/service/redis/mocks"
	"github.com/x-xyz/settlement/stores/healthcheck/repository"
)

func TestCheck(t *testing.T) {
	c := ctx.Background()

	assert.NoError(t, New(repository.New(nil, nil)).Check(c))

	r := &mocks.Service{}
	r.On("Set", mock.Anything, "healthcheck:testset", []byte("1"), mock.Anything).Return(nil).Once()
	assert.NoError(t, New(repository.New(nil, r)).Check(c))

	r.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()
	assert.Error(t, New(repository.New(nil, r)).Check(c))
	r.AssertExpectations(t)
}
