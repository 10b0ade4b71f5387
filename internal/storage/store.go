// ABOUTME: Curriculum store with metadata-filtered fetch and cosine similarity search
// ABOUTME: Vectors live as little-endian float64 BLOBs next to their chunks
package storage

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/edutera/ragserver/internal/models"
	"github.com/google/uuid"
)

// UploadBatchSize is how many chunks are embedded and inserted per batch
const UploadBatchSize = 10

// Embedder produces the semantic vector for a piece of text
type Embedder interface {
	GenerateEmbedding(text string) ([]float64, error)
}

// Store persists segmented chunks with embeddings and serves retrieval
type Store struct {
	db       *DB
	embedder Embedder
}

// NewStore creates a Store over an open database
func NewStore(db *DB, embedder Embedder) *Store {
	return &Store{db: db, embedder: embedder}
}

// SaveChunks embeds and inserts chunks in batches. A failed batch aborts
// the upload; previous batches stay committed.
func (s *Store) SaveChunks(chunks []models.Chunk) error {
	for start := 0; start < len(chunks); start += UploadBatchSize {
		end := start + UploadBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		if err := s.saveBatch(chunks[start:end]); err != nil {
			return fmt.Errorf("saving batch at offset %d: %w", start, err)
		}
	}
	return nil
}

func (s *Store) saveBatch(chunks []models.Chunk) error {
	tx, err := s.db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, chunk := range chunks {
		vector, err := s.embedder.GenerateEmbedding(chunk.Text)
		if err != nil {
			return fmt.Errorf("embedding chunk: %w", err)
		}

		_, err = tx.Exec(`
			INSERT INTO chunks (id, text, unit_id, lesson_id, skill_id, skill_name, chunk_type, vector, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, chunkID(), chunk.Text, chunk.UnitID, chunk.LessonID, chunk.SkillID,
			chunk.SkillName, string(chunk.ChunkType), vectorToBlob(vector), time.Now())
		if err != nil {
			return fmt.Errorf("inserting chunk: %w", err)
		}
	}

	return tx.Commit()
}

// GetByLesson fetches all chunks of a lesson in insertion order
func (s *Store) GetByLesson(lessonID int) ([]models.Chunk, error) {
	rows, err := s.db.conn.Query(`
		SELECT text, unit_id, lesson_id, skill_id, skill_name, chunk_type
		FROM chunks
		WHERE lesson_id = ?
		ORDER BY rowid ASC
	`, lessonID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanChunks(rows)
}

// QueryByLesson returns the topK chunks of a lesson nearest to the query text
func (s *Store) QueryByLesson(text string, lessonID, topK int) ([]models.Chunk, error) {
	return s.query(text, "lesson_id", lessonID, topK)
}

// QueryBySkill returns the topK chunks of a skill nearest to the query text
func (s *Store) QueryBySkill(text string, skillID, topK int) ([]models.Chunk, error) {
	return s.query(text, "skill_id", skillID, topK)
}

type scoredChunk struct {
	chunk models.Chunk
	score float64
}

func (s *Store) query(text, filterColumn string, filterValue, topK int) ([]models.Chunk, error) {
	queryVector, err := s.embedder.GenerateEmbedding(text)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	rows, err := s.db.conn.Query(fmt.Sprintf(`
		SELECT text, unit_id, lesson_id, skill_id, skill_name, chunk_type, vector
		FROM chunks
		WHERE %s = ?
	`, filterColumn), filterValue)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var scored []scoredChunk
	for rows.Next() {
		var (
			chunk     models.Chunk
			chunkType string
			blob      []byte
		)
		if err := rows.Scan(&chunk.Text, &chunk.UnitID, &chunk.LessonID,
			&chunk.SkillID, &chunk.SkillName, &chunkType, &blob); err != nil {
			return nil, err
		}
		chunk.ChunkType = models.ChunkType(chunkType)

		scored = append(scored, scoredChunk{
			chunk: chunk,
			score: CosineSimilarity(queryVector, blobToVector(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}

	chunks := make([]models.Chunk, len(scored))
	for i, sc := range scored {
		chunks[i] = sc.chunk
	}
	return chunks, nil
}

func scanChunks(rows *sql.Rows) ([]models.Chunk, error) {
	var chunks []models.Chunk
	for rows.Next() {
		var (
			chunk     models.Chunk
			chunkType string
		)
		if err := rows.Scan(&chunk.Text, &chunk.UnitID, &chunk.LessonID,
			&chunk.SkillID, &chunk.SkillName, &chunkType); err != nil {
			return nil, err
		}
		chunk.ChunkType = models.ChunkType(chunkType)
		chunks = append(chunks, chunk)
	}
	return chunks, rows.Err()
}

func chunkID() string {
	return "cid_" + uuid.New().String()
}

// vectorToBlob converts a float64 slice to a binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to a float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}

// CosineSimilarity calculates cosine similarity between two vectors
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
