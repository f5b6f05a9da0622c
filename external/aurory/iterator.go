package aurory

import (
	"context"
	"fmt"
	"time"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/usecase"
)

// matchIterator walks the aggregator's paginated history lazily. A page
// fetch failure truncates the sequence and surfaces through Err; callers
// keep whatever was already yielded, and the unadvanced watermark makes the
// missing range show up again on the next run.
type matchIterator struct {
	client     *Client
	competitor string
	since      time.Time

	page       int
	totalPages int
	fetched    bool

	buffer []usecase.MatchEvent
	index  int

	cpuSkipped       int
	malformedSkipped int

	done bool
	err  error
}

func (it *matchIterator) Next(ctx context.Context) (usecase.MatchEvent, bool) {
	for {
		if it.index < len(it.buffer) {
			event := it.buffer[it.index]
			it.index++
			return event, true
		}

		if it.done {
			return usecase.MatchEvent{}, false
		}

		if !it.fetchNextPage(ctx) {
			return usecase.MatchEvent{}, false
		}
	}
}

func (it *matchIterator) Err() error {
	return it.err
}

func (it *matchIterator) Skipped() (cpu int, malformed int) {
	return it.cpuSkipped, it.malformedSkipped
}

// fetchNextPage loads the next page into the buffer. It returns false when
// the sequence is finished, either exhausted or truncated by a failure.
func (it *matchIterator) fetchNextPage(ctx context.Context) bool {
	if it.competitor == "" {
		it.done = true
		it.err = fmt.Errorf("%w: competitor name is required", usecase.ErrInvalidInput)
		return false
	}
	if it.totalPages >= 0 && it.page > it.totalPages {
		it.done = true
		return false
	}

	if it.fetched && it.client.pageDelay > 0 {
		timer := time.NewTimer(it.client.pageDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			it.done = true
			it.err = ctx.Err()
			return false
		case <-timer.C:
		}
	}

	envelope, err := it.client.fetchPage(ctx, it.competitor, it.since, it.page)
	if err != nil {
		it.done = true
		it.err = fmt.Errorf("fetch page %d for %s: %w", it.page, it.competitor, err)
		return false
	}
	it.fetched = true
	it.totalPages = envelope.TotalPages

	fresh := make([]usecase.MatchEvent, 0, len(envelope.Data))
	for _, payload := range envelope.Data {
		if payload.isCPUOpponent() {
			it.cpuSkipped++
			continue
		}
		event, ok := payload.toEvent()
		if !ok {
			it.malformedSkipped++
			continue
		}
		if !event.PlayedAt.After(it.since) {
			continue
		}
		fresh = append(fresh, event)
	}

	if len(envelope.Data) == 0 {
		it.done = true
	}
	// A non-empty descending page with nothing newer than the watermark
	// means every later page is older still.
	if it.client.descending && len(envelope.Data) > 0 && len(fresh) == 0 &&
		allAtOrBefore(envelope.Data, it.since) {
		it.done = true
	}

	it.buffer = fresh
	it.index = 0
	it.page++
	return len(fresh) > 0 || !it.done
}

func allAtOrBefore(payloads []matchEventPayload, since time.Time) bool {
	for _, payload := range payloads {
		playedAt, err := parseEventTime(payload.CreatedAt)
		if err != nil {
			continue
		}
		if playedAt.After(since) {
			return false
		}
	}
	return true
}
