package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMonthsJSONVariants(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "1.json", `[
		{"day":1,"hijri":"19/6/1445","fajr":"05:10","sunrise":"06:30","dhuhr":"12:15","asr":"15:40","maghrib":"18:05","isha":"19:30"},
		{"day":2,"hijri":"20/6/1445","fajer":"05:11","sunrise":"06:31","dhuhr":"12:16","asr":"15:41","maghrib":"18:06","ishaa":"19:31"}
	]`)
	writeFile(t, dir, "03.json", `[
		{"day":1,"hijri":"19/8/1445","prayerTimes":{"fajr":"04:40","sunrise":"06:00","dhuhr":"12:10","asr":"15:30","maghrib":"18:20","isha":"19:40"}}
	]`)

	months, err := LoadMonths(dir, FormatJSON)
	require.NoError(t, err)
	require.Len(t, months, 2)

	assert.Equal(t, 1, months[0].Month)
	require.Len(t, months[0].Rows, 2)
	assert.Equal(t, "05:10", months[0].Rows[0].Fajr)
	assert.Equal(t, "05:11", months[0].Rows[1].Fajr)
	assert.Equal(t, "19:31", months[0].Rows[1].Isha)

	assert.Equal(t, 3, months[1].Month)
	assert.Equal(t, "04:40", months[1].Rows[0].Fajr)
	assert.Equal(t, "19/8/1445", months[1].Rows[0].Hijri)
}

func TestLoadMonthsCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2.csv", "day,hijri,fajer,sunrise,dhuhr,asr,maghrib,ishaa\n1,21/7/1445,05:00,06:20,12:15,15:45,18:10,19:35\n2, 22/7/1445,05:01,06:19,12:15,15:46,18:11,19:36\n")

	months, err := LoadMonths(dir, FormatCSV)
	require.NoError(t, err)
	require.Len(t, months, 1)
	assert.Equal(t, 2, months[0].Month)
	require.Len(t, months[0].Rows, 2)
	assert.Equal(t, 2, months[0].Rows[1].Day)
	assert.Equal(t, "22/7/1445", months[0].Rows[1].Hijri)
	assert.Equal(t, "19:36", months[0].Rows[1].Isha)
}

func TestLoadMonthsCSVBadDayIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2.csv", "day,hijri,fajr,sunrise,dhuhr,asr,maghrib,isha\nx,21/7/1445,05:00,06:20,12:15,15:45,18:10,19:35\n")

	_, err := LoadMonths(dir, FormatCSV)
	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, 2, rowErr.Line)
}

func TestLoadMonthsCSVMissingColumn(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2.csv", "day,hijri,fajr\n1,a,b\n")
	_, err := LoadMonths(dir, FormatCSV)
	assert.Error(t, err)
}

func TestLoadEventsDropsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "events.csv", `date,ar,en
"7/3","Laylat al-Qadr",null
"10/4","Eid al-Fitr","Festival"
"32/4","bad day",
"7/3","duplicate",
"nope"
"1/1",""
`)

	events, dropped, err := LoadEvents(path)
	require.NoError(t, err)
	assert.Equal(t, 4, dropped)
	require.Len(t, events, 2)
	assert.Equal(t, "Laylat al-Qadr", events["7/3"].Primary)
	assert.Empty(t, events["7/3"].Secondary)
	assert.Equal(t, "Festival", events["10/4"].Secondary)
}

func TestLoadHadithsDropsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "hadith.csv", "week,text,note\n1,Actions are by intentions,Bukhari\nx,text\n60,out of range\n2,Smile is charity\n")

	hadiths, dropped, err := LoadHadiths(path)
	require.NoError(t, err)
	assert.Equal(t, 2, dropped)
	require.Len(t, hadiths, 2)
	assert.Equal(t, "Bukhari", hadiths[1].Note)
	assert.Empty(t, hadiths[2].Note)
}

func TestLoadSideTablesEmptyPath(t *testing.T) {
	events, dropped, err := LoadEvents("")
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Zero(t, dropped)

	_, _, err = LoadHadiths(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "1.json", `[{"day":1,"hijri":"19/6/1445","fajr":"05:10","sunrise":"06:30","dhuhr":"12:15","asr":"15:40","maghrib":"18:05","isha":"19:30"}]`)
	events := writeFile(t, dir, "events.csv", "1/1,New Year\n")

	ds, err := Load(Source{Dir: dir, Format: FormatJSON, EventsFile: events})
	require.NoError(t, err)
	assert.Len(t, ds.Months, 1)
	assert.Len(t, ds.Events, 1)
	assert.Empty(t, ds.Hadiths)
	assert.Zero(t, ds.DroppedEvents)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)
	f, err = ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)
	_, err = ParseFormat("xml")
	assert.Error(t, err)
}
