package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// StoreHandler serves the record store over the same protocol as the
// spreadsheet script: GET ?action=get to list, form POST to save.
type StoreHandler struct {
	repo *Repo
	now  func() time.Time
}

func NewStoreHandler(repo *Repo) *StoreHandler {
	return &StoreHandler{repo: repo, now: time.Now}
}

func NewRouter(h *StoreHandler) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{Success: true})
	})

	for _, path := range []string{"/", "/exec"} {
		r.GET(path, h.List)
		r.POST(path, h.Save)
	}

	return r
}

func (h *StoreHandler) List(c *gin.Context) {
	if action := c.Query("action"); action != "get" {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: "unknown action: " + action})
		return
	}

	month := c.Query("month")
	if month != "" {
		if _, err := time.Parse("01/2006", month); err != nil || len(month) != 7 {
			c.JSON(http.StatusBadRequest, Response{Success: false, Message: "month must be MM/YYYY"})
			return
		}
	}

	records, err := h.repo.ListRecords(month)
	if err != nil {
		log.Printf("error listing records: %v", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Message: "failed to list records"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: records})
}

func (h *StoreHandler) Save(c *gin.Context) {
	fields := map[string]string{}
	for _, key := range []string{"date", "entryTime", "breakStartTime", "breakEndTime", "exitTime", "type"} {
		fields[key] = c.PostForm(key)
	}
	if fields["date"] == "" {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: "date is required"})
		return
	}
	if fields["type"] == "" {
		fields["type"] = string(KindAutomatic)
	}

	rec := NewRemoteRecord(fields, h.now().UnixMilli())
	if err := h.repo.SaveRecord(rec); err != nil {
		log.Printf("error saving record: %v", err)
		c.JSON(http.StatusInternalServerError, Response{Success: false, Message: "failed to save record"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Message: "record saved"})
}

// Serve runs the store service until ctx is done.
func Serve(ctx context.Context, addr string, repo *Repo) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: NewRouter(NewStoreHandler(repo)),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("store service running on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
