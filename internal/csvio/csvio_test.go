package csvio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/classschedule/internal/csvio"
	"github.com/rhyrak/classschedule/pkg/model"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTeachersParsesPin(t *testing.T) {
	path := writeTempCSV(t, "teachers.csv", "id,name,pinned_classroom_id\nt1,Ada,c1\nt2,Grace,\n")

	teachers, err := csvio.LoadTeachers(path, ',')
	require.NoError(t, err)
	require.Len(t, teachers, 2)
	assert.Equal(t, "c1", teachers[0].PinnedClassroomID)
	assert.Equal(t, "", teachers[1].PinnedClassroomID)
}

func TestLoadClassroomsSplitsTagList(t *testing.T) {
	path := writeTempCSV(t, "classrooms.csv", "id,name,capacity,type_id,tag_ids\nc1,Room A,30,standard,projector;whiteboard\n")

	rooms, err := csvio.LoadClassrooms(path, ',')
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, []string{"projector", "whiteboard"}, rooms[0].TagIDs)
}

func TestLoadSubjectsMergesRequirements(t *testing.T) {
	subjectsPath := writeTempCSV(t, "subjects.csv", "id,name,pinned_classroom_id,required_tag_ids\ns1,Algorithms,,\n")
	requirementsPath := writeTempCSV(t, "requirements.csv",
		"subject_id,class_type,room_type_id\ns1,lec,lecture-hall\ns1,lab,cs-lab\n")

	subjects, err := csvio.LoadSubjects(subjectsPath, requirementsPath, ',')
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, []string{"lecture-hall"}, subjects[0].ClassroomTypeRequirements["lec"])
	assert.Equal(t, []string{"cs-lab"}, subjects[0].ClassroomTypeRequirements["lab"])
}

func TestLoadEntriesSplitsGroupIDs(t *testing.T) {
	path := writeTempCSV(t, "entries.csv",
		"uid,subject_id,teacher_id,group_ids,class_type,student_count\ne1,s1,t1,g1;g2,lec,40\n")

	entries, err := csvio.LoadEntries(path, ',')
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"g1", "g2"}, entries[0].GroupIDs)
	assert.Equal(t, 40, entries[0].StudentCount)
}

func TestApplyAvailabilitySetsGridEntriesInPlace(t *testing.T) {
	path := writeTempCSV(t, "availability.csv",
		"entity_type,entity_id,day,time_slot_id,level\nteacher,t1,Monday,ts1,3\ngroup,g1,Tuesday,ts2,1\n")

	teachers := []model.Teacher{{ID: "t1"}}
	groups := []model.Group{{ID: "g1"}}

	require.NoError(t, csvio.ApplyAvailability(path, ',', teachers, groups))

	assert.Equal(t, model.Forbidden, teachers[0].Availability.At("Monday", "ts1"))
	assert.Equal(t, model.Desirable, groups[0].Availability.At("Tuesday", "ts2"))
	assert.Equal(t, model.Available, teachers[0].Availability.At("Monday", "ts2"), "untouched slot stays Available")
}

func TestParseDelimiterRejectsMultiCharacter(t *testing.T) {
	_, err := csvio.ParseDelimiter("::")
	assert.Error(t, err)
}

func TestParseDelimiterDefaultsToComma(t *testing.T) {
	d, err := csvio.ParseDelimiter("")
	require.NoError(t, err)
	assert.Equal(t, ',', d)
}

func TestExportScheduleToStringAndFile(t *testing.T) {
	schedule := []model.ScheduleEntry{
		{ID: "sched-e1", Day: "Monday", TimeSlotID: "ts1", ClassroomID: "c1", SubjectID: "s1", TeacherID: "t1", GroupIDs: []string{"g1", "g2"}, ClassType: "lec", UnscheduledUID: "e1"},
	}

	str, err := csvio.ExportScheduleString(schedule)
	require.NoError(t, err)
	assert.Contains(t, str, "sched-e1")
	assert.Contains(t, str, "g1;g2")

	path := writeTempCSV(t, "out.csv", "")
	written, err := csvio.ExportSchedule(schedule, path)
	require.NoError(t, err)
	assert.Equal(t, path, written)
}
