package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Freeeeeet/sampark_kvk/internal/model"
)

// SeedStats сколько записей записано при заполнении демо-данными
type SeedStats struct {
	Students int
	Notices  int
	Homework int
	Marks    int
}

// SeedFixtures заполняет хранилище демо-данными.
// Ученики, объявления и задания записываются upsert'ом по фиксированным id,
// оценки добавляются с новыми id и всегда привязаны к одному ученику.
// Первая ошибка записи прерывает заполнение и возвращается.
func (g *Gateway) SeedFixtures(ctx context.Context) (SeedStats, error) {
	var stats SeedStats

	for _, s := range model.FixtureStudents() {
		if err := g.Students.Upsert(ctx, s); err != nil {
			return stats, fmt.Errorf("seed students: %w", err)
		}
		stats.Students++
	}

	for _, n := range model.FixtureNotices() {
		if err := g.Notices.Upsert(ctx, n); err != nil {
			return stats, fmt.Errorf("seed notices: %w", err)
		}
		stats.Notices++
	}

	for _, h := range model.FixtureHomework() {
		if err := g.Homework.Upsert(ctx, h); err != nil {
			return stats, fmt.Errorf("seed homework: %w", err)
		}
		stats.Homework++
	}

	for _, m := range model.FixtureMarks() {
		m.StudentID = model.FixtureMarksStudentID
		if _, err := g.Marks.Append(ctx, m); err != nil {
			return stats, fmt.Errorf("seed marks: %w", err)
		}
		stats.Marks++
	}

	g.logger.Info("Fixtures seeded",
		zap.Int("students", stats.Students),
		zap.Int("notices", stats.Notices),
		zap.Int("homework", stats.Homework),
		zap.Int("marks", stats.Marks))

	return stats, nil
}
