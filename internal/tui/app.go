package tui

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/julianstephens/habitual/internal/input"
	"github.com/julianstephens/habitual/internal/menu"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/streak"
)

type screen int

const (
	screenHome screen = iota
	screenAddHabit
	screenHabitList
	screenHabitSearch
	screenHabit
	screenRenameHabit
	screenAddRecord
	screenRecordList
	screenRecord
	screenUpdateRecord
	screenExit
)

// Menu option labels, constant across screens.
const (
	optAddHabit     = "Add a new habit"
	optViewHabits   = "View habits"
	optSearchHabits = "Search habits"
	optExit         = "Exit"
	optAddRecord    = "Add a new record"
	optViewRecords  = "View records"
	optRenameHabit  = "Rename habit"
	optDeleteHabit  = "Delete habit"
	optUpdateRecord = "Update record"
	optDeleteRecord = "Delete record"
	optBack         = "Back"
)

// App sequences the menu screens. Navigation runs as one flat loop over an
// explicit screen state, so depth never grows with session length.
type App struct {
	store storage.Provider
	dec   input.Decoder
	out   io.Writer

	habit  models.Habit
	record models.Record
}

func New(store storage.Provider, dec input.Decoder, out io.Writer) *App {
	return &App{store: store, dec: dec, out: out}
}

func (a *App) Run() error {
	cur := screenHome
	for cur != screenExit {
		var err error
		switch cur {
		case screenHome:
			cur, err = a.home()
		case screenAddHabit:
			cur, err = a.addHabit()
		case screenHabitList:
			cur, err = a.habitList()
		case screenHabitSearch:
			cur, err = a.habitSearch()
		case screenHabit:
			cur, err = a.habitMenu()
		case screenRenameHabit:
			cur, err = a.renameHabit()
		case screenAddRecord:
			cur, err = a.addRecord()
		case screenRecordList:
			cur, err = a.recordList()
		case screenRecord:
			cur, err = a.recordMenu()
		case screenUpdateRecord:
			cur, err = a.updateRecord()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (a *App) home() (screen, error) {
	options := []string{optAddHabit, optViewHabits, optSearchHabits, optExit}
	p := menu.NewPager(options, menu.DefaultPageSize)
	choice, ok, err := p.Run(a.dec, a.optionRenderer("🏡 Habit Tracker"))
	if err != nil || !ok {
		return screenExit, err
	}
	switch choice {
	case optAddHabit:
		return screenAddHabit, nil
	case optViewHabits:
		return screenHabitList, nil
	case optSearchHabits:
		return screenHabitSearch, nil
	}
	return screenExit, nil
}

func (a *App) addHabit() (screen, error) {
	name, ok, err := a.promptLine("📝 Add a new habit", "New habit: ")
	if err != nil {
		return screenExit, err
	}
	if !ok {
		return screenHome, nil
	}

	habit, err := a.store.CreateHabit(name)
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		if nerr := a.notify("Habit cannot be empty!"); nerr != nil {
			return screenExit, nerr
		}
		return screenAddHabit, nil
	case errors.Is(err, models.ErrAlreadyExists):
		// Reuse the existing habit instead of treating the conflict as fatal.
		habit, err = a.store.FindHabitByName(name)
		if err != nil {
			return screenExit, err
		}
		if nerr := a.notify("Habit already exists!"); nerr != nil {
			return screenExit, nerr
		}
	case err != nil:
		return screenExit, err
	default:
		if nerr := a.notify("Habit added successfully"); nerr != nil {
			return screenExit, nerr
		}
	}

	a.habit = habit
	return screenHabit, nil
}

func (a *App) habitList() (screen, error) {
	habits, err := a.store.ListHabits()
	if err != nil {
		return screenExit, err
	}
	if len(habits) == 0 {
		if err := a.notify("No habits found!"); err != nil {
			return screenExit, err
		}
		return screenHome, nil
	}

	p := menu.NewPager(habits, menu.DefaultPageSize)
	habit, ok, err := p.Run(a.dec, pagedRenderer(a, "📋 My Habits", func(h models.Habit) string { return h.Name }))
	if err != nil {
		return screenExit, err
	}
	if !ok {
		return screenHome, nil
	}
	a.habit = habit
	return screenHabit, nil
}

func (a *App) habitSearch() (screen, error) {
	habits, err := a.store.ListHabits()
	if err != nil {
		return screenExit, err
	}
	if len(habits) == 0 {
		if err := a.notify("No habits found!"); err != nil {
			return screenExit, err
		}
		return screenHome, nil
	}

	f := menu.NewFilter(habits, func(h models.Habit) string { return h.Name }, menu.DefaultPageSize)
	habit, ok, err := f.Run(a.dec, filterRenderer(a, "🔎 Search habits", "Habit: ", func(h models.Habit) string { return h.Name }))
	if err != nil {
		return screenExit, err
	}
	if !ok {
		return screenHome, nil
	}
	a.habit = habit
	return screenHabit, nil
}

func (a *App) habitMenu() (screen, error) {
	records, err := a.store.ListRecords(a.habit.ID)
	if err != nil {
		return screenExit, err
	}
	dates := make([]string, 0, len(records))
	for _, r := range records {
		dates = append(dates, r.Date)
	}
	longest, err := streak.Longest(dates)
	if err != nil {
		return screenExit, err
	}

	options := []string{optAddRecord, optViewRecords, optRenameHabit, optDeleteHabit, optBack}
	p := menu.NewPager(options, menu.DefaultPageSize)
	choice, ok, err := p.Run(a.dec, a.optionRenderer(
		fmt.Sprintf("📋 Habit: %s", a.habit.Name),
		fmt.Sprintf("Longest streak: %d days", longest),
	))
	if err != nil {
		return screenExit, err
	}
	if !ok {
		return screenHabitList, nil
	}
	switch choice {
	case optAddRecord:
		return screenAddRecord, nil
	case optViewRecords:
		return screenRecordList, nil
	case optRenameHabit:
		return screenRenameHabit, nil
	case optDeleteHabit:
		return a.deleteHabit()
	}
	return screenHabitList, nil
}

func (a *App) renameHabit() (screen, error) {
	name, ok, err := a.promptLine(fmt.Sprintf("📋 Rename Habit: %s", a.habit.Name), "New name: ")
	if err != nil {
		return screenExit, err
	}
	if !ok {
		return screenHabit, nil
	}

	habit, err := a.store.RenameHabit(a.habit.ID, name)
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		if nerr := a.notify("Habit cannot be empty!"); nerr != nil {
			return screenExit, nerr
		}
		return screenRenameHabit, nil
	case errors.Is(err, models.ErrAlreadyExists):
		if nerr := a.notify("Habit already exists!"); nerr != nil {
			return screenExit, nerr
		}
		return screenHabit, nil
	case errors.Is(err, models.ErrNotFound):
		if nerr := a.notify("Habit not found!"); nerr != nil {
			return screenExit, nerr
		}
		return screenHabitList, nil
	case err != nil:
		return screenExit, err
	}

	a.habit = habit
	if err := a.notify("Habit renamed successfully"); err != nil {
		return screenExit, err
	}
	return screenHabit, nil
}

func (a *App) deleteHabit() (screen, error) {
	err := a.store.DeleteHabit(a.habit.ID)
	switch {
	case errors.Is(err, models.ErrNotFound):
		if nerr := a.notify("Habit not found!"); nerr != nil {
			return screenExit, nerr
		}
	case err != nil:
		return screenExit, err
	default:
		if nerr := a.notify("Habit deleted successfully"); nerr != nil {
			return screenExit, nerr
		}
	}
	return screenHabitList, nil
}

func (a *App) addRecord() (screen, error) {
	date, ok, err := a.promptLine("📝 Add a new record", "Date (YYYY-MM-DD): ")
	if err != nil {
		return screenExit, err
	}
	if !ok {
		return screenHabit, nil
	}

	record, err := a.store.CreateRecord(a.habit.ID, date)
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		if nerr := a.notify("Invalid date! Please use the format YYYY-MM-DD"); nerr != nil {
			return screenExit, nerr
		}
		return screenAddRecord, nil
	case errors.Is(err, models.ErrAlreadyExists):
		record, err = a.store.FindRecordByDate(a.habit.ID, date)
		if err != nil {
			return screenExit, err
		}
		if nerr := a.notify("Record already exists!"); nerr != nil {
			return screenExit, nerr
		}
	case errors.Is(err, models.ErrNotFound):
		if nerr := a.notify("Habit not found!"); nerr != nil {
			return screenExit, nerr
		}
		return screenHabitList, nil
	case err != nil:
		return screenExit, err
	default:
		if nerr := a.notify("Record added successfully"); nerr != nil {
			return screenExit, nerr
		}
	}

	a.record = record
	return screenRecord, nil
}

func (a *App) recordList() (screen, error) {
	records, err := a.store.ListRecords(a.habit.ID)
	if err != nil {
		return screenExit, err
	}
	if len(records) == 0 {
		if err := a.notify("No records found!"); err != nil {
			return screenExit, err
		}
		return screenHabit, nil
	}

	p := menu.NewPager(records, menu.DefaultPageSize)
	record, ok, err := p.Run(a.dec, pagedRenderer(a,
		fmt.Sprintf("📋 Records: %s", a.habit.Name),
		func(r models.Record) string { return r.Date }))
	if err != nil {
		return screenExit, err
	}
	if !ok {
		return screenHabit, nil
	}
	a.record = record
	return screenRecord, nil
}

func (a *App) recordMenu() (screen, error) {
	options := []string{optUpdateRecord, optDeleteRecord, optBack}
	p := menu.NewPager(options, menu.DefaultPageSize)
	choice, ok, err := p.Run(a.dec, a.optionRenderer(
		fmt.Sprintf("📋 Record: %s - %s", a.habit.Name, a.record.Date)))
	if err != nil {
		return screenExit, err
	}
	if !ok {
		return screenRecordList, nil
	}
	switch choice {
	case optUpdateRecord:
		return screenUpdateRecord, nil
	case optDeleteRecord:
		return a.deleteRecord()
	}
	return screenRecordList, nil
}

func (a *App) updateRecord() (screen, error) {
	date, ok, err := a.promptLine(
		fmt.Sprintf("📋 Update Record: %s - %s", a.habit.Name, a.record.Date),
		"New date (YYYY-MM-DD): ")
	if err != nil {
		return screenExit, err
	}
	if !ok {
		return screenRecord, nil
	}

	record, err := a.store.UpdateRecord(a.record.ID, date)
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		if nerr := a.notify("Invalid date! Please use the format YYYY-MM-DD"); nerr != nil {
			return screenExit, nerr
		}
		return screenUpdateRecord, nil
	case errors.Is(err, models.ErrAlreadyExists):
		if nerr := a.notify("Record already exists!"); nerr != nil {
			return screenExit, nerr
		}
		return screenRecord, nil
	case errors.Is(err, models.ErrNotFound):
		if nerr := a.notify("Record not found!"); nerr != nil {
			return screenExit, nerr
		}
		return screenRecordList, nil
	case err != nil:
		return screenExit, err
	}

	a.record = record
	if err := a.notify("Record updated successfully"); err != nil {
		return screenExit, err
	}
	return screenRecord, nil
}

func (a *App) deleteRecord() (screen, error) {
	err := a.store.DeleteRecord(a.record.ID)
	switch {
	case errors.Is(err, models.ErrNotFound):
		if nerr := a.notify("Record not found!"); nerr != nil {
			return screenExit, nerr
		}
	case err != nil:
		return screenExit, err
	default:
		if nerr := a.notify("Record deleted successfully"); nerr != nil {
			return screenExit, nerr
		}
	}
	return screenRecordList, nil
}

// promptLine reads a line of text through the key decoder. ok is false when
// the user cancelled with Escape.
func (a *App) promptLine(title, prompt string) (text string, ok bool, err error) {
	for {
		a.clear()
		a.header(title)
		fmt.Fprintf(a.out, "%s%s\n", prompt, text)
		ev, err := a.dec.ReadEvent()
		if err != nil {
			return "", false, err
		}
		switch ev.Kind {
		case input.Character:
			text += string(ev.Rune)
		case input.Backspace:
			if text != "" {
				_, size := utf8.DecodeLastRuneInString(text)
				text = text[:len(text)-size]
			}
		case input.Enter:
			return text, true, nil
		case input.Escape:
			return "", false, nil
		}
	}
}

// notify shows a message and waits for Enter (or Escape) before the next
// screen replaces it.
func (a *App) notify(msg string) error {
	fmt.Fprintf(a.out, "\n%s\n%s\n", messageStyle.Render(msg), helpStyle.Render("Press ENTER to continue"))
	for {
		ev, err := a.dec.ReadEvent()
		if err != nil {
			return err
		}
		if ev.Kind == input.Enter || ev.Kind == input.Escape {
			return nil
		}
	}
}
