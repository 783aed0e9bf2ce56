package client

import (
	"context"
	"net/http"
	"time"

	"github.com/pario-ai/ragchat/pkg/models"
	"github.com/pario-ai/ragchat/pkg/policy"
)

type batchPayload struct {
	Results        []answerPayload `json:"results"`
	TotalQuestions int             `json:"total_questions"`
}

// BatchSearch sends several questions in one backend call. The response
// always carries one result per question, in order.
func (c *Client) BatchSearch(ctx context.Context, req models.BatchRequest) models.BatchResponse {
	start := c.now()

	questions := make([]string, len(req.Questions))
	for i, q := range req.Questions {
		questions[i] = Sanitize(q)
	}
	sanitized, err := models.NewBatchRequest(questions,
		models.WithBatchCache(req.UseCache),
		models.WithBatchHybrid(req.UseHybrid),
	)
	if err != nil {
		if len(questions) == 0 {
			return models.BatchResponse{Results: []models.BatchResult{}}
		}
		return c.failedBatch(len(questions), EmptyQuestionMessage, start)
	}

	var payload batchPayload
	if err := c.do(ctx, http.MethodPost, batchPath, sanitized, 2*c.cfg.Timeout, &payload); err != nil {
		return c.failedBatch(len(questions), messageOf(err), start)
	}

	results := make([]models.BatchResult, len(questions))
	for i := range results {
		if i >= len(payload.Results) {
			results[i] = errorResult(MissingResultMessage)
			continue
		}
		results[i] = toBatchResult(payload.Results[i])
	}
	if len(payload.Results) > len(questions) {
		c.logger.Printf("backend batch returned %d results for %d questions", len(payload.Results), len(questions))
	}

	return models.BatchResponse{
		Results:        results,
		TotalQuestions: len(questions),
		ProcessingTime: c.elapsed(start),
	}
}

func (c *Client) failedBatch(n int, msg string, start time.Time) models.BatchResponse {
	results := make([]models.BatchResult, n)
	for i := range results {
		results[i] = errorResult(msg)
	}
	return models.BatchResponse{
		Results:        results,
		TotalQuestions: n,
		ProcessingTime: c.elapsed(start),
	}
}

func (c *Client) elapsed(start time.Time) float64 {
	return c.now().Sub(start).Seconds()
}

func toBatchResult(p answerPayload) models.BatchResult {
	if p.failed() {
		return errorResult(p.failureMessage())
	}
	answer, urls := policy.Apply(p.Answer, p.SourceURLs)
	return models.BatchResult{
		Answer:       answer,
		SourceURLs:   urls,
		Status:       string(models.StatusSuccess),
		SourceCount:  len(urls),
		ResponseTime: p.ResponseTime,
		Cached:       p.Cached,
		CacheType:    p.CacheType,
		SearchType:   p.SearchType,
	}
}

func errorResult(msg string) models.BatchResult {
	return models.BatchResult{
		SourceURLs:   []string{},
		Status:       string(models.StatusError),
		ErrorMessage: msg,
	}
}
