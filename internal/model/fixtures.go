package model

// FixtureMarksStudentID ученик, к которому привязываются демо-оценки
const FixtureMarksStudentID = "S101"

// FixtureStudents демо-набор учеников
func FixtureStudents() []Student {
	return []Student{
		{ID: "S101", Name: "Aarav Patel", RollNo: "12", Class: "X-A", Attendance: 92, ParentsName: "Suresh Patel"},
		{ID: "S102", Name: "Diya Sharma", RollNo: "13", Class: "X-A", Attendance: 96, ParentsName: "Rohit Sharma"},
		{ID: "S103", Name: "Ishaan Gupta", RollNo: "14", Class: "X-B", Attendance: 85, ParentsName: "Anjali Gupta"},
		{ID: "S104", Name: "Meera Reddy", RollNo: "05", Class: "VI-B", Attendance: 98, ParentsName: "Vikram Reddy"},
	}
}

// FixtureNotices демо-набор объявлений
func FixtureNotices() []Notice {
	return []Notice{
		{ID: "N1", Title: "Annual Sports Meet 2024", Date: "2024-10-25", Content: "The Annual Sports Meet will be held on Nov 5th. Students must register by Friday.", Type: NoticeEvent, Author: "Principal"},
		{ID: "N2", Title: "Diwali Holidays", Date: "2024-10-20", Content: "School will remain closed from Oct 30 to Nov 3 for Diwali celebrations.", Type: NoticeHoliday, Author: "Admin"},
		{ID: "N3", Title: "Unit Test II Syllabus", Date: "2024-10-15", Content: "Syllabus for upcoming unit tests has been uploaded to the academic section.", Type: NoticeAcademic, Author: "Exam Cell"},
	}
}

// FixtureHomework демо-набор домашних заданий
func FixtureHomework() []Homework {
	return []Homework{
		{ID: "H1", Subject: "Mathematics", Title: "Quadratic Equations", Description: "Solve Exercise 4.2 questions 1-10.", DueDate: "2024-10-28", Class: "X-A", AssignedBy: "Mrs. Verma"},
		{ID: "H2", Subject: "Science", Title: "Light Reflection", Description: "Draw ray diagrams for concave mirrors.", DueDate: "2024-10-29", Class: "X-A", AssignedBy: "Mr. Rao"},
		{ID: "H3", Subject: "English", Title: "Poem Comprehension", Description: "Read 'The Road Not Taken' and answer back exercises.", DueDate: "2024-10-27", Class: "VI-B", AssignedBy: "Ms. Kaur"},
	}
}

// FixtureMarks демо-оценки за полугодие, без идентификаторов
func FixtureMarks() []ExamMark {
	return []ExamMark{
		{Subject: "Mathematics", Marks: 78, Total: 80, ExamType: ExamMidTerm},
		{Subject: "Science", Marks: 72, Total: 80, ExamType: ExamMidTerm},
		{Subject: "Social Studies", Marks: 75, Total: 80, ExamType: ExamMidTerm},
		{Subject: "English", Marks: 68, Total: 80, ExamType: ExamMidTerm},
		{Subject: "Hindi", Marks: 70, Total: 80, ExamType: ExamMidTerm},
	}
}
