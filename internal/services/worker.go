package services

import (
	"context"
	"errors"
	"log"
	"sync"
)

var ErrPoolStopped = errors.New("extraction pool stopped")

// ExtractionPool bounds how many uploaded documents are decoded at once.
// Each queued document is held in memory until a worker picks it up.
type ExtractionPool interface {
	Start(ctx context.Context)
	Stop()
	Submit(ctx context.Context, doc *Document) (string, error)
}

type extractionJob struct {
	doc    *Document
	result chan extractionResult
}

type extractionResult struct {
	text string
	err  error
}

type extractionPool struct {
	extractor   ExtractorService
	jobQueue    chan extractionJob
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

func NewExtractionPool(extractor ExtractorService, concurrency, queueSize int) ExtractionPool {
	if concurrency <= 0 {
		concurrency = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	return &extractionPool{
		extractor:   extractor,
		jobQueue:    make(chan extractionJob, queueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements ExtractionPool.
func (w *extractionPool) Start(ctx context.Context) {
	log.Printf("🚀 Starting extraction pool with %d workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements ExtractionPool.
func (w *extractionPool) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping extraction pool...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Extraction pool stopped")
	})
}

// Submit implements ExtractionPool. It waits for a worker to finish the
// document, for ctx to end, or for the pool to stop, whichever comes first.
func (w *extractionPool) Submit(ctx context.Context, doc *Document) (string, error) {
	job := extractionJob{
		doc:    doc,
		result: make(chan extractionResult, 1),
	}

	select {
	case w.jobQueue <- job:
	case <-w.stopChan:
		return "", ErrPoolStopped
	case <-ctx.Done():
		return "", ctx.Err()
	}

	select {
	case res := <-job.result:
		return res.text, res.err
	case <-w.stopChan:
		return "", ErrPoolStopped
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (w *extractionPool) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Extraction worker #%d stopped\n", workerID)
			return
		case <-ctx.Done():
			log.Printf("👷 Extraction worker #%d cancelled\n", workerID)
			return
		case job := <-w.jobQueue:
			text, err := w.extractor.Extract(job.doc)
			job.result <- extractionResult{text: text, err: err}
		}
	}
}
