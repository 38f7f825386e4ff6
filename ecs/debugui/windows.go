package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pixitris/ecs"
)

// PerformanceWindow shows frame times and storage totals.
type PerformanceWindow struct {
	Title   string
	Storage *ecs.Storage
	History *FrameHistory
}

func (w *PerformanceWindow) Render() {
	if !imgui.BeginV(w.Title, nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := w.Storage.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Archetypes: %d", stats.ArchetypeCount))
	imgui.Text(fmt.Sprintf("Singletons: %d", stats.SingletonCount))
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", w.History.Average(), w.History.FPS()))

	if samples := w.History.Samples(); len(samples) > 0 {
		imgui.Separator()
		imgui.Text("Frame Time Graph (ms)")
		imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))
	}

	if imgui.TreeNodeStr("Singleton Types") {
		for _, name := range stats.SingletonTypes {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}

	imgui.End()
}

// ArchetypeWindow lists archetypes and the components of the entities in the
// selected one.
type ArchetypeWindow struct {
	Title   string
	Storage *ecs.Storage

	selected      *uint32
	sortColumn    SortColumn
	sortAscending bool
}

func (w *ArchetypeWindow) Render() {
	if !imgui.BeginV(w.Title, nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	rows := ArchetypeRows(w.Storage)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable
	if imgui.BeginTableV("ArchetypeTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Archetype ID")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			w.sortColumn = SortColumn(spec.ColumnIndex())
			w.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}
		SortArchetypeRows(rows, w.sortColumn, w.sortAscending)

		for _, row := range rows {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := w.selected != nil && *w.selected == row.ID
			if imgui.SelectableBoolV(fmt.Sprintf("0x%X", row.ID), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				id := row.ID
				w.selected = &id
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.Components, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.Entities))
		}

		imgui.EndTable()
	}

	if w.selected != nil {
		w.renderEntities(*w.selected)
	}

	imgui.End()
}

func (w *ArchetypeWindow) renderEntities(id uint32) {
	archetype, ok := w.Storage.Archetype(id)
	if !ok {
		return
	}

	imgui.Separator()
	for entity := range archetype.Iter() {
		if !imgui.TreeNodeStr(fmt.Sprintf("Entity %d", entity)) {
			continue
		}
		for _, t := range archetype.Types() {
			if imgui.TreeNodeStr(t.String()) {
				renderFields(Fields(w.Storage.GetComponent(entity, t)))
				imgui.TreePop()
			}
		}
		imgui.TreePop()
	}
}

// SchedulerWindow shows per-system timings.
type SchedulerWindow struct {
	Title     string
	Scheduler *ecs.Scheduler
}

func (w *SchedulerWindow) Render() {
	if !imgui.BeginV(w.Title, nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := w.Scheduler.GetStats()
	imgui.Text(fmt.Sprintf("Frame: %d", w.Scheduler.Frame()))
	imgui.Text(fmt.Sprintf("Systems: %d", stats.SystemCount))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Last")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()

		for _, s := range stats.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(s.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", s.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(s.LastDuration.String())
			imgui.TableNextColumn()
			imgui.Text(s.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(s.MaxDuration.String())
		}

		imgui.EndTable()
	}

	imgui.End()
}

// SingletonWindow shows the fields of every singleton.
type SingletonWindow struct {
	Title   string
	Storage *ecs.Storage
}

func (w *SingletonWindow) Render() {
	if !imgui.BeginV(w.Title, nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	for t, value := range w.Storage.Singletons() {
		if imgui.TreeNodeStr(t.String()) {
			renderFields(Fields(value))
			imgui.TreePop()
		}
	}

	imgui.End()
}

func renderFields(rows []FieldRow) {
	for _, row := range rows {
		if row.Path == "" {
			imgui.Text(row.Value)
			continue
		}
		imgui.Text(fmt.Sprintf("%s: %s", row.Path, row.Value))
	}
}
