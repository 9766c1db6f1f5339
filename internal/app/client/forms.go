package client

import (
	"context"
	"errors"
	"sync/atomic"

	"swimlog/internal/domain/record"
)

// Form - отправка черновика записи. Нулевой RecordID означает создание, иначе изменение.
type Form struct {
	app      *App
	RecordID int
	Draft    *record.Draft

	processing atomic.Bool
}

func (a *App) NewForm(recordID int, d *record.Draft) *Form {
	return &Form{app: a, RecordID: recordID, Draft: d}
}

// Processing сообщает, что отправка ещё идёт.
func (f *Form) Processing() bool {
	return f.processing.Load()
}

// Submit отправляет черновик. Повторный вызов во время отправки возвращает ErrBusy.
func (f *Form) Submit(ctx context.Context) (record.Entry, error) {
	if !f.processing.CompareAndSwap(false, true) {
		return record.Entry{}, ErrBusy
	}
	defer f.processing.Store(false)

	if f.RecordID == 0 {
		return f.app.CreateRecord(ctx, f.Draft)
	}
	return f.app.UpdateRecord(ctx, f.RecordID, f.Draft)
}

// BulkResult - итог создания одной записи из пакета.
type BulkResult struct {
	Index   int
	Success bool
	Message string
	Error   error
	Entry   record.Entry
}

type BulkResults []BulkResult

// AllSucceeded истинно, только если успешно создана каждая запись.
func (r BulkResults) AllSucceeded() bool {
	for _, res := range r {
		if !res.Success {
			return false
		}
	}
	return true
}

// Failed возвращает количество неудачных записей.
func (r BulkResults) Failed() int {
	n := 0
	for _, res := range r {
		if !res.Success {
			n++
		}
	}
	return n
}

// BulkCreate создаёт записи по очереди. Ошибка одной записи не прерывает пакет,
// progress вызывается после каждой записи. Пока пакет выполняется,
// повторный вызов возвращает ErrBusy.
func (a *App) BulkCreate(ctx context.Context, drafts []*record.Draft, progress func(BulkResult)) (BulkResults, error) {
	if _, err := a.session.Current(); err != nil {
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, errors.New("нет записей для создания")
	}
	if !a.bulkBusy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer a.bulkBusy.Store(false)

	results := make(BulkResults, 0, len(drafts))
	for i, d := range drafts {
		res := BulkResult{Index: i}

		e, err := a.CreateRecord(ctx, d)
		if err != nil {
			res.Error = err
			res.Message = err.Error()
		} else {
			res.Success = true
			res.Message = "created"
			res.Entry = e
		}

		results = append(results, res)
		if progress != nil {
			progress(res)
		}
	}

	a.log.Info("Пакетное создание завершено", "total", len(results), "failed", results.Failed())
	return results, nil
}
