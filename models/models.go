package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Access models a time-limited entitlement (premium). Valid is flipped to
// false by the access sweep once AccessTill has passed.
type Access struct {
	Valid      bool       `bson:"valid" json:"valid"`
	AccessTill *time.Time `bson:"accessTill,omitempty" json:"accessTill,omitempty"`
	Plan       string     `bson:"plan,omitempty" json:"plan,omitempty"`
}

// GraderAccess extends Access with the grading model and a weekly essay cap.
type GraderAccess struct {
	Valid            bool       `bson:"valid" json:"valid"`
	AccessTill       *time.Time `bson:"accessTill,omitempty" json:"accessTill,omitempty"`
	Model            string     `bson:"model,omitempty" json:"model,omitempty"`
	WeeklyEssayLimit int        `bson:"weeklyEssayLimit,omitempty" json:"weeklyEssayLimit,omitempty"`
}

// SubjectStats is one entry of a user's selectedSubjects list.
type SubjectStats struct {
	SubjectCode        string    `bson:"subjectCode" json:"subjectCode"`
	SubjectName        string    `bson:"subjectName" json:"subjectName"`
	UserRating         int       `bson:"userRating" json:"userRating"`
	UserAttempts       int       `bson:"userAttempts" json:"userAttempts"`
	UserCorrectAnswers int       `bson:"userCorrectAnswers" json:"userCorrectAnswers"`
	UserPercentile     float64   `bson:"userPercentile" json:"userPercentile"`
	DateAdded          time.Time `bson:"dateAdded" json:"dateAdded"`
}

// SolvedQuestion is an attempt-history entry. Entries are append-only and
// never mutated after insert.
type SolvedQuestion struct {
	QuestionID       primitive.ObjectID `bson:"questionId" json:"questionId"`
	SubjectCode      string             `bson:"subjectCode" json:"subjectCode"`
	UserAnswer       string             `bson:"userAnswer" json:"userAnswer"`
	UserQuestionTime int                `bson:"userQuestionTime" json:"userQuestionTime"`
	IsCorrect        bool               `bson:"isCorrect" json:"isCorrect"`
	AttemptedOn      time.Time          `bson:"attemptedOn" json:"attemptedOn"`
}

// GradedEssay records one grader run against the weekly limit.
type GradedEssay struct {
	EssayID      string    `bson:"essayId" json:"essayId"`
	Date         time.Time `bson:"date" json:"date"`
	Question     string    `bson:"question" json:"question"`
	SubjectName  string    `bson:"subjectName" json:"subjectName"`
	SubjectCode  string    `bson:"subjectCode" json:"subjectCode"`
	QuestionType string    `bson:"questionType" json:"questionType"`
	UserEssay    string    `bson:"userEssay" json:"userEssay"`
	TotalMarks   int       `bson:"totalMarks" json:"totalMarks"`
	Grade        int       `bson:"grade" json:"grade"`
	Feedback     string    `bson:"feedback" json:"feedback"`
}

// SolvedPaper records one mock-paper submission.
type SolvedPaper struct {
	PaperID       primitive.ObjectID `bson:"paperId" json:"paperId"`
	PaperCode     string             `bson:"paperCode" json:"paperCode"`
	UserMarks     int                `bson:"userMarks" json:"userMarks"`
	UserPaperTime int                `bson:"userPaperTime" json:"userPaperTime"`
	Accuracy      float64            `bson:"accuracy" json:"accuracy"`
	AttemptedOn   time.Time          `bson:"attemptedOn" json:"attemptedOn"`
}

// User model
type User struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserName               string             `bson:"userName" json:"userName"`
	Email                  string             `bson:"email" json:"email"`
	Password               string             `bson:"password" json:"-"`
	PasswordChangedAt      time.Time          `bson:"passwordChangedAt" json:"-"`
	IsVerified             bool               `bson:"isVerified" json:"isVerified"`
	VerificationCode       string             `bson:"verificationCode,omitempty" json:"-"`
	VerificationCodeExpiry time.Time          `bson:"verificationCodeExpiry,omitempty" json:"-"`
	ResetCode              string             `bson:"resetCode,omitempty" json:"-"`
	ResetCodeExpiry        time.Time          `bson:"resetCodeExpiry,omitempty" json:"-"`
	PremiumAccess          Access             `bson:"premiumAccess" json:"premiumAccess"`
	GraderAccess           GraderAccess       `bson:"graderAccess" json:"graderAccess"`
	SelectedSubjects       []SubjectStats     `bson:"selectedSubjects" json:"selectedSubjects"`
	CumulativeRating       int                `bson:"cumulativeRating" json:"cumulativeRating"`
	CumulativePercentile   float64            `bson:"cumulativePercentile" json:"cumulativePercentile"`
	QuestionsSolvedDetails []SolvedQuestion   `bson:"questionsSolvedDetails" json:"questionsSolvedDetails"`
	EssaysGraded           []GradedEssay      `bson:"essaysGraded" json:"essaysGraded"`
	PapersSolvedDetails    []SolvedPaper      `bson:"papersSolvedDetails" json:"papersSolvedDetails"`
	CreatedAt              time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt              time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Option is one of the four answer choices, tagged A-D.
type Option struct {
	Option string `bson:"option" json:"option"`
	Text   string `bson:"text" json:"text"`
	Image  string `bson:"image,omitempty" json:"image,omitempty"`
}

// SubjectRef embeds the subject identity on a question document.
type SubjectRef struct {
	Name        string `bson:"name" json:"name"`
	SubjectCode string `bson:"subjectCode" json:"subjectCode"`
}

// Question model
type Question struct {
	ID                         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Subject                    SubjectRef         `bson:"subject" json:"subject"`
	Level                      string             `bson:"level" json:"level"`
	Topic                      string             `bson:"topic" json:"topic"`
	Subtopic                   string             `bson:"subtopic" json:"subtopic"`
	QuestionText               string             `bson:"questionText" json:"questionText"`
	Options                    []Option           `bson:"options" json:"options"`
	CorrectOption              Option             `bson:"correctOption" json:"correctOption"`
	Explanation                string             `bson:"explanation" json:"explanation"`
	TotalAttempts              int                `bson:"totalAttempts" json:"totalAttempts"`
	TotalCorrect               int                `bson:"totalCorrect" json:"totalCorrect"`
	AverageTimeTakenInSeconds  float64            `bson:"averageTimeTakenInSeconds" json:"averageTimeTakenInSeconds"`
	DifficultyRating           float64            `bson:"difficultyRating" json:"difficultyRating"`
	DifficultyRatingPercentile float64            `bson:"difficultyRatingPercentile" json:"difficultyRatingPercentile"`
	CreatedAt                  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt                  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Topic groups subtopics inside a subject level.
type Topic struct {
	TopicName string   `bson:"topicName" json:"topicName"`
	Subtopics []string `bson:"subtopics" json:"subtopics"`
}

// Level is one exam level (IGCSE, AS-Level, A-Level) of a subject.
type Level struct {
	LevelName string  `bson:"levelName" json:"levelName"`
	Topics    []Topic `bson:"topics" json:"topics"`
}

// Subject model — static reference data seeded at startup.
type Subject struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SubjectCode string             `bson:"subjectCode" json:"subjectCode"`
	SubjectName string             `bson:"subjectName" json:"subjectName"`
	Levels      []Level            `bson:"levels" json:"levels"`
}

// Paper model — mock-exam aggregate grouping questions.
type Paper struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	PaperCode       string               `bson:"paperCode" json:"paperCode"`
	Subject         SubjectRef           `bson:"subject" json:"subject"`
	Level           string               `bson:"level" json:"level"`
	Questions       []primitive.ObjectID `bson:"questions" json:"questions"`
	TotalMarks      int                  `bson:"totalMarks" json:"totalMarks"`
	DurationMinutes int                  `bson:"durationMinutes" json:"durationMinutes"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
}
