package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/schoolgrid/timetable/internal/client"
	"github.com/schoolgrid/timetable/internal/grid"
	"github.com/schoolgrid/timetable/internal/model"
	"github.com/schoolgrid/timetable/internal/timeslot"
)

// weekimage renders a section's weekly grid to a PNG file, either from a
// running server or from built-in sample data when no server is given.
func main() {
	addr := flag.String("addr", "", "server base URL, e.g. http://localhost:8080")
	section := flag.String("section", "", "class section UUID to fetch")
	out := flag.String("out", "week.png", "output file")
	flag.Parse()

	png, err := render(*addr, *section)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, png, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *out, err)
		os.Exit(1)
	}
	fmt.Printf("Week image saved to %s (%d bytes)\n", *out, len(png))
}

func render(addr, section string) ([]byte, error) {
	if addr == "" {
		g := grid.PlacePeriods(samplePeriods(), grid.DefaultDays, timeslot.DefaultSlots)
		return grid.RenderPNG(g)
	}

	sectionID, err := uuid.Parse(section)
	if err != nil {
		return nil, fmt.Errorf("section must be a UUID: %w", err)
	}
	c := client.New(addr, model.RoleTeacher)
	return c.GridImage(context.Background(), sectionID)
}

func samplePeriods() []*model.Period {
	room := "Room 12"
	roomID := uuid.New()

	mk := func(weekday int, start, end, subject, teacher string, withRoom bool) *model.Period {
		startAt, _ := timeslot.Combine(start)
		endAt, _ := timeslot.Combine(end)
		p := &model.Period{
			ID:          uuid.New(),
			Weekday:     weekday,
			StartTime:   startAt,
			EndTime:     endAt,
			SubjectName: subject,
			TeacherName: teacher,
		}
		if withRoom {
			p.RoomID = &roomID
			p.RoomName = &room
		}
		return p
	}

	return []*model.Period{
		mk(1, "08:00", "09:00", "Mathematics", "A. Karimova", true),
		mk(1, "10:00", "11:00", "Biology", "B. Orazov", false),
		mk(2, "09:00", "10:00", "Physics", "G. Ospanova", true),
		mk(3, "08:00", "09:00", "History", "D. Seitkali", false),
		mk(4, "13:00", "14:00", "English", "M. Alieva", true),
		mk(5, "11:00", "12:00", "Chemistry", "N. Tulegenov", false),
		mk(6, "09:00", "10:00", "Physical Education", "K. Zhaksybek", false),
	}
}
