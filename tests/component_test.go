package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/lithammer/shortuuid/v3"
	"github.com/redis/go-redis/v9"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketservice/app"
	"ticketservice/db/data_lake"
	"ticketservice/db/payments"
	"ticketservice/db/read_model_ops_payments"
	"ticketservice/db/seats"
	"ticketservice/entity"
	"ticketservice/gateway"
)

const httpAddress = "localhost:8080"

type ticketPurchaseRequest struct {
	AccountID int64         `json:"account_id"`
	Tickets   []ticketEntry `json:"tickets"`
}

type ticketEntry struct {
	TicketType string `json:"ticket_type"`
	Count      int    `json:"count"`
}

func TestComponent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	dbconn, err := sqlx.Open("postgres", postgresURL)
	require.NoError(t, err)
	defer dbconn.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: redisURL})
	defer redisClient.Close()

	spreadsheetsClient := &gateway.SpreadsheetsMock{}
	receiptsClient := &gateway.ReceiptsMock{}

	a, err := app.New(
		app.Config{
			HTTPAddr:        httpAddress,
			ReceiptCurrency: "GBP",
		},
		dbconn,
		redisClient,
		spreadsheetsClient,
		receiptsClient,
		nil,
	)
	require.NoError(t, err)

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		assert.NoError(t, a.Run(ctx))
	}()
	defer func() {
		cancel()
		<-finished
	}()

	waitForHttpServer(t)

	t.Run("purchase_is_paid_and_seated_once", func(t *testing.T) {
		accountID := newAccountID()
		idempotencyKey := uuid.NewString()

		request := ticketPurchaseRequest{
			AccountID: accountID,
			Tickets: []ticketEntry{
				{TicketType: "ADULT", Count: 2},
				{TicketType: "CHILD", Count: 1},
				{TicketType: "INFANT", Count: 1},
			},
		}

		for i := 0; i < 3; i++ {
			resp := sendTicketPurchase(t, request, idempotencyKey)
			require.Equal(t, http.StatusAccepted, resp.StatusCode)
		}

		payment := assertPaymentStored(t, dbconn, accountID, 50)
		assertSeatsReserved(t, dbconn, accountID, 3)
		assertReceiptIssued(t, receiptsClient, payment)
		assertRowAdded(t, spreadsheetsClient, "payments-taken", payment.PaymentID)
		assertRowAdded(t, spreadsheetsClient, "seats-reserved", strconv.FormatInt(accountID, 10))
		assertOpsReadModelUpdated(t, dbconn, payment.PaymentID)
		assertEventStoredInDataLake(t, dbconn, "PaymentTaken_v1", payment.PaymentID)

		// duplicates are processed by now, they must not create new rows
		stored, err := payments.NewPostgresRepository(dbconn).FindByAccountID(context.Background(), accountID)
		require.NoError(t, err)
		assert.Len(t, stored, 1)
	})

	t.Run("rejected_purchases", func(t *testing.T) {
		testCases := []struct {
			Name    string
			Request ticketPurchaseRequest
			Reason  string
		}{
			{
				Name: "invalid_account",
				Request: ticketPurchaseRequest{
					AccountID: 0,
					Tickets:   []ticketEntry{{TicketType: "ADULT", Count: 1}},
				},
				Reason: entity.ErrInvalidAccountID.Reason,
			},
			{
				Name: "too_many_tickets",
				Request: ticketPurchaseRequest{
					AccountID: newAccountID(),
					Tickets: []ticketEntry{
						{TicketType: "ADULT", Count: 20},
						{TicketType: "INFANT", Count: 1},
					},
				},
				Reason: entity.ErrTooManyTickets.Reason,
			},
			{
				Name: "without_adult",
				Request: ticketPurchaseRequest{
					AccountID: newAccountID(),
					Tickets:   []ticketEntry{{TicketType: "CHILD", Count: 2}},
				},
				Reason: entity.ErrAdultTicketRequired.Reason,
			},
		}

		for _, tc := range testCases {
			t.Run(tc.Name, func(t *testing.T) {
				resp := sendTicketPurchase(t, tc.Request, uuid.NewString())
				defer resp.Body.Close()

				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Contains(t, string(body), tc.Reason)
			})
		}
	})
}

func newAccountID() int64 {
	return rand.Int63n(1_000_000_000) + 1
}

func sendTicketPurchase(t *testing.T, request ticketPurchaseRequest, idempotencyKey string) *http.Response {
	t.Helper()

	payload, err := json.Marshal(request)
	require.NoError(t, err)

	httpReq, err := http.NewRequest(
		http.MethodPost,
		"http://"+httpAddress+"/ticket-purchases",
		bytes.NewBuffer(payload),
	)
	require.NoError(t, err)

	httpReq.Header.Set("Correlation-ID", shortuuid.New())
	httpReq.Header.Set("Idempotency-Key", idempotencyKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(httpReq)
	require.NoError(t, err)

	return resp
}

func assertPaymentStored(t *testing.T, db *sqlx.DB, accountID int64, amount int) entity.Payment {
	t.Helper()

	repo := payments.NewPostgresRepository(db)

	var stored []entity.Payment
	require.EventuallyWithT(
		t,
		func(t *assert.CollectT) {
			var err error
			stored, err = repo.FindByAccountID(context.Background(), accountID)
			if !assert.NoError(t, err) {
				return
			}
			assert.Len(t, stored, 1)
		},
		10*time.Second,
		100*time.Millisecond,
	)

	assert.Equal(t, amount, stored[0].Amount)

	return stored[0]
}

func assertSeatsReserved(t *testing.T, db *sqlx.DB, accountID int64, expectedSeats int) {
	t.Helper()

	repo := seats.NewPostgresRepository(db)

	assert.EventuallyWithT(
		t,
		func(t *assert.CollectT) {
			reserved, err := repo.CountReservedSeats(context.Background(), accountID)
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, expectedSeats, reserved)
		},
		10*time.Second,
		100*time.Millisecond,
	)
}

func assertReceiptIssued(t *testing.T, receiptsService *gateway.ReceiptsMock, payment entity.Payment) {
	t.Helper()

	var receipt entity.IssueReceiptRequest
	assert.EventuallyWithT(
		t,
		func(t *assert.CollectT) {
			var ok bool
			receipt, ok = lo.Find(receiptsService.Receipts(), func(r entity.IssueReceiptRequest) bool {
				return r.PaymentID == payment.PaymentID
			})
			assert.True(t, ok, "receipt for payment %s not found", payment.PaymentID)
		},
		10*time.Second,
		100*time.Millisecond,
	)

	assert.Equal(t, strconv.Itoa(payment.Amount), receipt.Price.Amount)
	assert.Equal(t, "GBP", receipt.Price.Currency)
}

func assertRowAdded(t *testing.T, spreadsheetsService *gateway.SpreadsheetsMock, sheetName string, value string) {
	t.Helper()

	assert.EventuallyWithT(
		t,
		func(t *assert.CollectT) {
			values := lo.Flatten(spreadsheetsService.Rows(sheetName))
			assert.Contains(t, values, value, "%s not found in sheet %s", value, sheetName)
		},
		10*time.Second,
		100*time.Millisecond,
	)
}

func assertOpsReadModelUpdated(t *testing.T, db *sqlx.DB, paymentID string) {
	t.Helper()

	readModel := read_model_ops_payments.NewPostgresRepository(db)

	assert.EventuallyWithT(
		t,
		func(t *assert.CollectT) {
			payment, err := readModel.Get(context.Background(), paymentID)
			if !assert.NoError(t, err) {
				return
			}
			assert.NotZero(t, payment.TakenAt)
			assert.Equal(t, "mocked-receipt-number", payment.ReceiptNumber)
		},
		10*time.Second,
		100*time.Millisecond,
	)
}

func assertEventStoredInDataLake(t *testing.T, db *sqlx.DB, eventName string, paymentID string) {
	t.Helper()

	dataLake := data_lake.NewDataLake(db)

	assert.EventuallyWithT(
		t,
		func(t *assert.CollectT) {
			events, err := dataLake.GetEvents(context.Background())
			if !assert.NoError(t, err) {
				return
			}

			found := lo.ContainsBy(events, func(e entity.DataLakeEvent) bool {
				return e.Name == eventName && bytes.Contains(e.Payload, []byte(paymentID))
			})
			assert.True(t, found, "%s for payment %s not found in data lake", eventName, paymentID)
		},
		10*time.Second,
		100*time.Millisecond,
	)
}

func waitForHttpServer(t *testing.T) {
	t.Helper()

	require.EventuallyWithT(
		t,
		func(t *assert.CollectT) {
			resp, err := http.Get("http://" + httpAddress + "/health")
			if !assert.NoError(t, err) {
				return
			}
			defer resp.Body.Close()

			assert.Less(t, resp.StatusCode, 300, "API not ready, http status: %d", resp.StatusCode)
		},
		time.Second*10,
		time.Millisecond*50,
	)
}
