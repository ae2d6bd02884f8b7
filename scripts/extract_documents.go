package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/services"
)

// Runs the extraction decoders over local files, without the HTTP layer.
// Usage: go run ./scripts/extract_documents.go resume.pdf cover.docx
func main() {
	if len(os.Args) < 2 {
		log.Fatalf("❌ Usage: %s <file> [file...]", filepath.Base(os.Args[0]))
	}

	log.Println("🚀 Starting document extraction...")
	extractor := services.NewExtractorService()

	successCount := 0
	failCount := 0

	for _, path := range os.Args[1:] {
		log.Printf("\n📄 Processing: %s", path)

		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("   ⚠️  Cannot read file, skipping: %v", err)
			failCount++
			continue
		}

		text, err := extractor.Extract(&services.Document{
			Name: filepath.Base(path),
			Data: data,
		})
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Extracted %d characters, %d lines", len(text), strings.Count(text, "\n")+1)
		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Extraction Summary:")
	log.Printf("   ✅ Successful: %d documents", successCount)
	log.Printf("   ❌ Failed: %d documents", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some documents failed to extract. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All documents extracted successfully!")
}
