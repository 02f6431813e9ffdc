package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, to, body string) error {
	args := m.Called(ctx, to, body)
	return args.Error(0)
}

// fakeQueue ปฏิเสธ TaskID ซ้ำเหมือน asynq
type fakeQueue struct {
	tasks []*asynq.Task
	ids   []string
	err   error
}

func (q *fakeQueue) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if q.err != nil {
		return nil, q.err
	}
	id := "generated"
	for _, opt := range opts {
		if opt.Type() == asynq.TaskIDOpt {
			id = opt.Value().(string)
		}
	}
	for _, existing := range q.ids {
		if existing == id {
			return nil, asynq.ErrTaskIDConflict
		}
	}
	q.tasks = append(q.tasks, task)
	q.ids = append(q.ids, id)
	return &asynq.TaskInfo{ID: id, Type: task.Type()}, nil
}

func TestOTPDispatcherEnqueues(t *testing.T) {
	queue := &fakeQueue{}
	sender := new(mockSender)
	d := NewOTPDispatcher(queue, sender, "+919999999999", zerolog.Nop())

	require.NoError(t, d.NotifyOTP(context.Background(), "a@b.com", "123456"))

	require.Len(t, queue.tasks, 1)
	assert.Equal(t, TypeSendOTPSMS, queue.tasks[0].Type())

	var payload SendSMSPayload
	require.NoError(t, json.Unmarshal(queue.tasks[0].Payload(), &payload))
	assert.Equal(t, "+919999999999", payload.To)
	assert.Contains(t, payload.Body, "123456")
	assert.Contains(t, payload.Body, "a@b.com")
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, []string{SMSTaskID("a@b.com", "123456")}, queue.ids)
}

func TestOTPDispatcherDeduplicatesSameCode(t *testing.T) {
	queue := &fakeQueue{}
	d := NewOTPDispatcher(queue, new(mockSender), "+919999999999", zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, d.NotifyOTP(ctx, "a@b.com", "123456"))
	require.NoError(t, d.NotifyOTP(ctx, "a@b.com", "123456"))
	assert.Len(t, queue.tasks, 1)

	// code ใหม่ของ email เดิมต้องถูกส่ง
	require.NoError(t, d.NotifyOTP(ctx, "a@b.com", "777777"))
	assert.Len(t, queue.tasks, 2)
}

func TestOTPDispatcherSendsInlineWithoutQueue(t *testing.T) {
	sender := new(mockSender)
	sender.On("Send", mock.Anything, "+919999999999", OTPMessage("a@b.com", "654321")).Return(nil)

	d := NewOTPDispatcher(nil, sender, "+919999999999", zerolog.Nop())
	require.NoError(t, d.NotifyOTP(context.Background(), "a@b.com", "654321"))
	sender.AssertExpectations(t)
}

func TestOTPDispatcherErrors(t *testing.T) {
	sender := new(mockSender)

	d := NewOTPDispatcher(nil, sender, "", zerolog.Nop())
	assert.Error(t, d.NotifyOTP(context.Background(), "a@b.com", "1"))

	d = NewOTPDispatcher(&fakeQueue{err: errors.New("redis down")}, sender, "+91", zerolog.Nop())
	assert.Error(t, d.NotifyOTP(context.Background(), "a@b.com", "1"))
}

func TestHandleSendSMSTask(t *testing.T) {
	sender := new(mockSender)
	sender.On("Send", mock.Anything, "+91", "hi").Return(nil).Once()
	handler := HandleSendSMSTask(sender, zerolog.Nop())

	task, err := NewSendSMSTask("+91", "hi")
	require.NoError(t, err)
	require.NoError(t, handler.ProcessTask(context.Background(), task))
	sender.AssertExpectations(t)

	bad := asynq.NewTask(TypeSendOTPSMS, []byte("{"))
	err = handler.ProcessTask(context.Background(), bad)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
