package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/SIH-2025/edusafe-service/internal/config"
	"github.com/SIH-2025/edusafe-service/internal/models"
	"github.com/SIH-2025/edusafe-service/pkg"
)

// NewSeedCmd loads the demo safety curriculum into the database.
func NewSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the demo modules, quizzes and instructor account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			db, err := pkg.InitDatabase(cfg)
			if err != nil {
				return err
			}
			defer closeDatabase(db)

			return runSeed(cmd.Context(), db)
		},
	}
}

func runSeed(ctx context.Context, db *gorm.DB) error {
	instructor, err := ensureInstructor(ctx, db)
	if err != nil {
		return err
	}

	// Hard-delete previous seed data so reruns stay deterministic and the
	// unique module index on quizzes is free for the new rows.
	if err := db.WithContext(ctx).Unscoped().Where("1 = 1").Delete(&models.Quiz{}).Error; err != nil {
		return fmt.Errorf("failed to clear quizzes: %w", err)
	}
	if err := db.WithContext(ctx).Unscoped().Where("1 = 1").Delete(&models.Module{}).Error; err != nil {
		return fmt.Errorf("failed to clear modules: %w", err)
	}

	modules := seedModules(instructor.ID)
	for _, module := range modules {
		appendRecapLessons(module)
		if err := db.WithContext(ctx).Create(module).Error; err != nil {
			return fmt.Errorf("failed to seed module %q: %w", module.Title, err)
		}

		quiz := buildModuleQuiz(module, instructor.ID)
		if err := db.WithContext(ctx).Create(quiz).Error; err != nil {
			return fmt.Errorf("failed to seed quiz for %q: %w", module.Title, err)
		}
	}

	slog.Info("Seed completed", "modules", len(modules))
	return nil
}

func ensureInstructor(ctx context.Context, db *gorm.DB) (*models.User, error) {
	var instructor models.User
	err := db.WithContext(ctx).Where("email = ?", "instructor@edusafe.com").First(&instructor).Error
	if err == nil {
		return &instructor, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to look up instructor: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	instructor = models.User{
		Username:     "instructor",
		Email:        "instructor@edusafe.com",
		PasswordHash: string(hash),
		Role:         models.RoleTeacher,
	}
	if err := db.WithContext(ctx).Create(&instructor).Error; err != nil {
		return nil, fmt.Errorf("failed to create instructor: %w", err)
	}

	slog.Info("Created demo instructor account", "email", instructor.Email)
	return &instructor, nil
}

// appendRecapLessons adds the recap and case-study lessons every module
// ends with.
func appendRecapLessons(module *models.Module) {
	order := len(module.Lessons)
	module.Lessons = append(module.Lessons,
		models.Lesson{
			Title:         module.Title + ": Best Practices Recap",
			Content:       fmt.Sprintf("A concise summary of key takeaways from %s, with actionable best practices and do's and don'ts.", module.Title),
			Type:          models.LessonText,
			Order:         order + 1,
			EstimatedTime: 10,
		},
		models.Lesson{
			Title:         module.Title + ": Case Study",
			Content:       fmt.Sprintf("Walk through a short case study to apply concepts from %s to a realistic scenario.", module.Title),
			Type:          models.LessonText,
			Order:         order + 2,
			EstimatedTime: 12,
		},
	)
}

// buildModuleQuiz derives the standalone quiz from the module's quiz lesson,
// generating a generic three-question quiz for modules without one, and
// appends two practice questions either way.
func buildModuleQuiz(module *models.Module, instructorID string) *models.Quiz {
	var (
		questions []models.Question
		title     = module.Title + " Quiz"
		desc      = fmt.Sprintf("Test your understanding of %s.", module.Title)
	)

	for _, lesson := range module.Lessons {
		if lesson.Type != models.LessonQuiz || len(lesson.Questions) == 0 {
			continue
		}
		title = lesson.Title
		desc = lesson.Content
		for i, legacy := range lesson.Questions {
			question := models.Question{
				ID:         models.NewID(),
				Text:       legacy.Question,
				Points:     1,
				Type:       models.SingleChoice,
				Order:      i + 1,
				TimeLimit:  60,
				Difficulty: models.QuestionMedium,
			}
			for optIdx, opt := range legacy.Options {
				question.Options = append(question.Options, models.Option{
					ID:        models.NewID(),
					Text:      opt,
					IsCorrect: legacy.CorrectAnswer == optIdx,
				})
			}
			questions = append(questions, question)
		}
		break
	}

	if len(questions) == 0 {
		questions = defaultQuizQuestions(module)
	}
	questions = append(questions, practiceQuestions(module, len(questions))...)

	return &models.Quiz{
		ModuleID:           module.ID,
		Title:              title,
		Description:        desc,
		Questions:          questions,
		TimeLimit:          30,
		PassingScore:       70,
		MaxAttempts:        3,
		ShowCorrectAnswers: true,
		ShowExplanations:   true,
		Tags:               module.Tags,
		Category:           module.Category,
		InstructorID:       instructorID,
		IsPublished:        true,
		IsActive:           true,
	}
}

func defaultQuizQuestions(module *models.Module) []models.Question {
	topic := module.Category
	if topic == "" {
		topic = "Safety"
	}
	lower := strings.ToLower(topic)

	return []models.Question{
		newSeedQuestion(1, models.QuestionEasy,
			fmt.Sprintf("Which statement best describes %s basics?", lower),
			fmt.Sprintf("%s awareness reduces risk and improves outcomes.", topic),
			1,
			fmt.Sprintf("Ignoring %s guidance is acceptable if experienced", lower),
			fmt.Sprintf("%s practices help reduce risks and keep people safe", topic),
			fmt.Sprintf("%s only applies to professionals", topic),
			fmt.Sprintf("%s is optional in schools", topic),
		),
		newSeedQuestion(2, models.QuestionMedium,
			fmt.Sprintf("What should you do first when facing a potential %s hazard?", lower),
			"Assess and follow established procedures to minimize risk.",
			1,
			"Panic and act quickly without a plan",
			"Assess the situation and follow the recommended plan",
			"Share it on social media for advice",
			"Ignore it and continue",
		),
		newSeedQuestion(3, models.QuestionEasy,
			fmt.Sprintf("Which is a good habit for %s?", lower),
			"Preparedness and practice improve safety outcomes.",
			1,
			"Skipping drills and training",
			"Regular practice and preparedness",
			"Relying only on others to respond",
			"Waiting until an emergency to learn",
		),
	}
}

func practiceQuestions(module *models.Module, offset int) []models.Question {
	category := strings.ToLower(module.Category)
	if category == "" {
		category = "practice"
	}

	return []models.Question{
		newSeedQuestion(offset+1, models.QuestionMedium,
			fmt.Sprintf("Why is regular practice important for %s?", module.Title),
			"Practice strengthens skills and improves response quality.",
			1,
			"It wastes time",
			"It builds confidence and reduces mistakes",
			"It replaces planning",
			"It is only for experts",
		),
		newSeedQuestion(offset+2, models.QuestionEasy,
			fmt.Sprintf("Which action best supports safe %s?", category),
			"Following procedures and reporting issues promotes safety.",
			1,
			"Ignoring official guidance",
			"Following verified procedures and reporting hazards",
			"Only reacting during emergencies",
			"Relying on others to act first",
		),
	}
}

func newSeedQuestion(order int, difficulty models.QuestionDifficulty, text, explanation string, correct int, options ...string) models.Question {
	question := models.Question{
		ID:          models.NewID(),
		Text:        text,
		Explanation: explanation,
		Points:      1,
		Type:        models.SingleChoice,
		Order:       order,
		TimeLimit:   60,
		Difficulty:  difficulty,
	}
	for i, opt := range options {
		question.Options = append(question.Options, models.Option{
			ID:        models.NewID(),
			Text:      opt,
			IsCorrect: i == correct,
		})
	}
	return question
}

func strPtr(s string) *string { return &s }

// seedModules is the demo safety curriculum.
func seedModules(instructorID string) []*models.Module {
	return []*models.Module{
		{
			Title:          "Cyberbullying Awareness",
			Description:    "Learn about cyberbullying, its impact, and how to prevent it. This module covers identifying cyberbullying, supporting victims, and creating a positive online environment.",
			Difficulty:     models.DifficultyBeginner,
			Duration:       "2-3 hours",
			EstimatedHours: 2.5,
			Category:       "Online Safety",
			Tags:           []string{"cyberbullying", "online safety", "digital citizenship"},
			Thumbnail:      strPtr("https://images.unsplash.com/photo-1516321318423-f06f85e504b3?auto=format&fit=crop&w=1170&q=80"),
			IsPublished:    true,
			IsActive:       true,
			InstructorID:   instructorID,
			Lessons: []models.Lesson{
				{
					Title:         "Understanding Cyberbullying",
					Content:       "Cyberbullying is bullying that takes place over digital devices like cell phones, computers, and tablets. It can occur through SMS, Text, and apps, or online in social media, forums, or gaming where people can view, participate in, or share content.",
					Type:          models.LessonText,
					Order:         1,
					EstimatedTime: 15,
				},
				{
					Title:         "Types of Cyberbullying",
					Content:       "Learn about different forms of cyberbullying including harassment, flaming, exclusion, outing, and cyberstalking.",
					Type:          models.LessonText,
					Order:         2,
					EstimatedTime: 20,
				},
				{
					Title:         "Impact of Cyberbullying",
					Content:       "Explore the psychological, emotional, and academic effects of cyberbullying on victims.",
					Type:          models.LessonVideo,
					VideoURL:      strPtr("https://www.youtube.com/watch?v=6ctd75a7_Yw"),
					Order:         3,
					EstimatedTime: 25,
				},
				{
					Title:         "Cyberbullying Quiz",
					Content:       "Test your knowledge about cyberbullying awareness and prevention.",
					Type:          models.LessonQuiz,
					Order:         4,
					EstimatedTime: 15,
					Questions: []models.LegacyQuizQuestion{
						{
							Question: "What is cyberbullying?",
							Options: []string{
								"Bullying that only happens in person",
								"Bullying that takes place over digital devices like cell phones, computers, and tablets",
								"A type of computer virus",
								"A form of online gaming",
							},
							CorrectAnswer: 1,
						},
						{
							Question: "Which of the following is NOT a form of cyberbullying?",
							Options: []string{
								"Posting hurtful comments on social media",
								"Sending threatening messages",
								"Helping someone report online harassment",
								"Spreading rumors through digital messages",
							},
							CorrectAnswer: 2,
						},
						{
							Question: "What should you do if you witness cyberbullying?",
							Options: []string{
								"Ignore it completely",
								"Join in to avoid becoming a target yourself",
								"Take screenshots and report it to a trusted adult",
								"Directly confront the bully online",
							},
							CorrectAnswer: 2,
						},
					},
				},
			},
		},
		{
			Title:          "Flood Safety and Preparedness",
			Description:    "Learn essential knowledge about flood safety, preparedness, and response. This module covers understanding flood risks, preparing for floods, and what to do during and after a flood event.",
			Difficulty:     models.DifficultyIntermediate,
			Duration:       "3-4 hours",
			EstimatedHours: 3.5,
			Category:       "Natural Disaster Safety",
			Tags:           []string{"flood", "disaster preparedness", "emergency response"},
			Thumbnail:      strPtr("https://images.unsplash.com/photo-1547683905-f686c993aae5?auto=format&fit=crop&w=1170&q=80"),
			IsPublished:    true,
			IsActive:       true,
			InstructorID:   instructorID,
			Lessons: []models.Lesson{
				{
					Title:         "Understanding Flood Risks",
					Content:       "Learn about different types of floods, flood-prone areas, and how to assess your risk level. This lesson covers flash floods, river floods, coastal floods, and urban flooding.",
					Type:          models.LessonText,
					Order:         1,
					EstimatedTime: 20,
				},
				{
					Title:         "Flood Preparedness",
					Content:       "Discover how to prepare for potential floods, including creating emergency kits, developing evacuation plans, and flood-proofing your home or school.",
					Type:          models.LessonText,
					Order:         2,
					EstimatedTime: 25,
				},
				{
					Title:         "During and After a Flood",
					Content:       "Essential safety measures to take during a flood event and recovery steps after flooding has occurred.",
					Type:          models.LessonVideo,
					VideoURL:      strPtr("https://www.youtube.com/watch?v=43M5mZuzHF8"),
					Order:         3,
					EstimatedTime: 30,
				},
				{
					Title:         "Flood Safety Quiz",
					Content:       "Test your knowledge about flood safety and preparedness.",
					Type:          models.LessonQuiz,
					Order:         4,
					EstimatedTime: 15,
					Questions: []models.LegacyQuizQuestion{
						{
							Question: "What should you do if you encounter flood waters while driving?",
							Options: []string{
								"Drive through slowly if the water is not moving",
								"Turn around and find another route",
								"Accelerate to get through the water quickly",
								"Wait in your car until the water recedes",
							},
							CorrectAnswer: 1,
						},
						{
							Question: "Which of the following is NOT recommended for your emergency flood kit?",
							Options: []string{
								"Bottled water and non-perishable food",
								"First aid supplies",
								"Large electrical appliances",
								"Flashlights and batteries",
							},
							CorrectAnswer: 2,
						},
						{
							Question: "What is the first thing you should do when a flood warning is issued for your area?",
							Options: []string{
								"Go outside to check water levels",
								"Stay tuned to local news for updates and follow evacuation orders",
								"Call friends to see if they are also affected",
								"Take photos of your belongings for insurance",
							},
							CorrectAnswer: 1,
						},
					},
				},
			},
		},
		{
			Title:          "Earthquake Safety Essentials",
			Description:    "Comprehensive guide to earthquake safety and preparedness. Learn how to protect yourself during an earthquake, prepare your environment, and respond appropriately after seismic events.",
			Difficulty:     models.DifficultyIntermediate,
			Duration:       "3-4 hours",
			EstimatedHours: 3.5,
			Category:       "Natural Disaster Safety",
			Tags:           []string{"earthquake", "seismic safety", "emergency response"},
			Thumbnail:      strPtr("https://images.unsplash.com/photo-1584738766473-61c083514bf4?auto=format&fit=crop&w=1170&q=80"),
			IsPublished:    true,
			IsActive:       true,
			InstructorID:   instructorID,
			Lessons: []models.Lesson{
				{
					Title:         "Earthquake Science Basics",
					Content:       "Understanding earthquakes: what causes them, how they are measured, and which areas are most at risk. Learn about tectonic plates, fault lines, and seismic waves.",
					Type:          models.LessonText,
					Order:         1,
					EstimatedTime: 20,
				},
				{
					Title:         "Preparing for Earthquakes",
					Content:       "How to prepare your home, school, or workplace for potential earthquakes. This includes securing furniture, creating emergency plans, and assembling disaster kits.",
					Type:          models.LessonText,
					Order:         2,
					EstimatedTime: 25,
				},
				{
					Title:         "During and After an Earthquake",
					Content:       "Critical safety actions to take during an earthquake (Drop, Cover, Hold On) and important steps for the aftermath, including checking for injuries and damage.",
					Type:          models.LessonVideo,
					VideoURL:      strPtr("https://www.youtube.com/watch?v=BLEPakj1YTY"),
					Order:         3,
					EstimatedTime: 30,
				},
				{
					Title:         "Earthquake Safety Quiz",
					Content:       "Test your knowledge about earthquake safety and preparedness.",
					Type:          models.LessonQuiz,
					Order:         4,
					EstimatedTime: 15,
					Questions: []models.LegacyQuizQuestion{
						{
							Question: "What is the recommended action during an earthquake?",
							Options: []string{
								"Run outside immediately",
								"Stand in a doorway",
								"Drop, Cover, and Hold On",
								"Call emergency services",
							},
							CorrectAnswer: 2,
						},
						{
							Question: "Which of the following should NOT be done after an earthquake?",
							Options: []string{
								"Check for injuries and provide first aid",
								"Immediately use elevators to evacuate tall buildings",
								"Listen to local news for emergency information",
								"Check for gas leaks and other hazards",
							},
							CorrectAnswer: 1,
						},
						{
							Question: "What should be included in an earthquake preparedness kit?",
							Options: []string{
								"Only water and food",
								"Water, food, first aid supplies, flashlight, battery-powered radio, and medications",
								"Only important documents",
								"Only electronic devices",
							},
							CorrectAnswer: 1,
						},
					},
				},
			},
		},
		{
			Title:          "Landslide Awareness and Safety",
			Description:    "Essential information about landslide risks, warning signs, and safety measures. Learn to identify landslide-prone areas, recognize early warning signs, and take appropriate safety actions.",
			Difficulty:     models.DifficultyIntermediate,
			Duration:       "3-4 hours",
			EstimatedHours: 3.0,
			Category:       "Natural Disaster Safety",
			Tags:           []string{"landslide", "mudslide", "geological hazards"},
			Thumbnail:      strPtr("https://images.unsplash.com/photo-1621528833554-c7a0a5d9b841?auto=format&fit=crop&w=1170&q=80"),
			IsPublished:    true,
			IsActive:       true,
			InstructorID:   instructorID,
			Lessons: []models.Lesson{
				{
					Title:         "Understanding Landslides",
					Content:       "Learn about the causes of landslides, including heavy rainfall, earthquakes, volcanic activity, and human factors such as deforestation and construction on unstable slopes.",
					Type:          models.LessonText,
					Order:         1,
					EstimatedTime: 20,
				},
				{
					Title:         "Recognizing Warning Signs",
					Content:       "How to identify potential landslide warning signs, such as cracks in the ground, tilting trees, unusual sounds, and changes in water flow patterns.",
					Type:          models.LessonText,
					Order:         2,
					EstimatedTime: 25,
				},
				{
					Title:         "Landslide Safety Measures",
					Content:       "Essential safety procedures to follow before, during, and after a landslide event, including evacuation routes, emergency communication, and recovery steps.",
					Type:          models.LessonVideo,
					VideoURL:      strPtr("https://www.youtube.com/watch?v=ZVpYbGb1C-E"),
					Order:         3,
					EstimatedTime: 25,
				},
				{
					Title:         "Landslide Awareness Quiz",
					Content:       "Test your knowledge about landslide risks and safety measures.",
					Type:          models.LessonQuiz,
					Order:         4,
					EstimatedTime: 15,
					Questions: []models.LegacyQuizQuestion{
						{
							Question: "Which of the following is a warning sign of a potential landslide?",
							Options: []string{
								"Clear skies and dry conditions",
								"Doors and windows that suddenly stick",
								"Increased wildlife activity",
								"Lower water levels in streams",
							},
							CorrectAnswer: 1,
						},
						{
							Question: "What should you do if you suspect an imminent landslide?",
							Options: []string{
								"Stay in place and wait for it to pass",
								"Move uphill away from the path of the landslide",
								"Move downhill to get away faster",
								"Stand behind a tree for protection",
							},
							CorrectAnswer: 1,
						},
						{
							Question: "Which factor does NOT typically contribute to landslides?",
							Options: []string{
								"Heavy rainfall",
								"Earthquakes",
								"Calm weather conditions",
								"Deforestation",
							},
							CorrectAnswer: 2,
						},
					},
				},
			},
		},
		{
			Title:          "School Safety Fundamentals",
			Description:    "Essential knowledge about physical safety in school environments. Learn about emergency procedures, identifying potential hazards, and creating a safe learning environment.",
			Difficulty:     models.DifficultyBeginner,
			Duration:       "3-4 hours",
			EstimatedHours: 3.5,
			Category:       "Physical Safety",
			Tags:           []string{"school safety", "emergency procedures", "hazard prevention"},
			Thumbnail:      strPtr("https://images.unsplash.com/photo-1580582932707-520aed937b7b?auto=format&fit=crop&w=1332&q=80"),
			IsPublished:    true,
			IsActive:       true,
			InstructorID:   instructorID,
			Lessons: []models.Lesson{
				{
					Title:         "School Safety Basics",
					Content:       "An introduction to the fundamental concepts of school safety and why it matters for everyone.",
					Type:          models.LessonText,
					Order:         1,
					EstimatedTime: 20,
				},
				{
					Title:         "Emergency Procedures",
					Content:       "Learn about different emergency procedures including fire drills, lockdowns, and evacuation protocols.",
					Type:          models.LessonText,
					Order:         2,
					EstimatedTime: 30,
				},
				{
					Title:         "Identifying Potential Hazards",
					Content:       "How to identify and report potential safety hazards in school environments.",
					Type:          models.LessonVideo,
					VideoURL:      strPtr("https://www.youtube.com/watch?v=KUv1-HBIg3g"),
					Order:         3,
					EstimatedTime: 25,
				},
				{
					Title:         "School Safety Quiz",
					Content:       "Test your knowledge about school safety fundamentals.",
					Type:          models.LessonQuiz,
					Order:         4,
					EstimatedTime: 15,
					Questions: []models.LegacyQuizQuestion{
						{
							Question: "What should you do if you discover a safety hazard at school?",
							Options: []string{
								"Ignore it if it seems minor",
								"Try to fix it yourself",
								"Report it immediately to a teacher or staff member",
								"Post about it on social media",
							},
							CorrectAnswer: 2,
						},
						{
							Question: "During a fire drill, what should students do?",
							Options: []string{
								"Gather personal belongings before leaving",
								"Exit quickly and quietly following designated routes",
								"Call parents to inform them",
								"Wait for individual instructions",
							},
							CorrectAnswer: 1,
						},
						{
							Question: "Which of the following is NOT a good practice for school safety?",
							Options: []string{
								"Keeping emergency exits clear",
								"Reporting suspicious activity",
								"Propping open secured doors for convenience",
								"Participating in safety drills",
							},
							CorrectAnswer: 2,
						},
					},
				},
			},
		},
		{
			Title:          "Mental Health Awareness",
			Description:    "Understand the importance of mental health, recognize warning signs, and learn strategies for maintaining good mental health in school settings.",
			Difficulty:     models.DifficultyIntermediate,
			Duration:       "4-5 hours",
			EstimatedHours: 4.5,
			Category:       "Mental Health",
			Tags:           []string{"mental health", "well-being", "stress management"},
			Thumbnail:      strPtr("https://images.unsplash.com/photo-1493836512294-502baa1986e2?auto=format&fit=crop&w=1170&q=80"),
			IsPublished:    true,
			IsActive:       true,
			InstructorID:   instructorID,
			Lessons: []models.Lesson{
				{
					Title:         "Understanding Mental Health",
					Content:       "An introduction to mental health concepts and why mental well-being is important for students.",
					Type:          models.LessonText,
					Order:         1,
					EstimatedTime: 25,
				},
				{
					Title:         "Recognizing Warning Signs",
					Content:       "Learn to identify warning signs of mental health issues in yourself and peers.",
					Type:          models.LessonText,
					Order:         2,
					EstimatedTime: 30,
				},
				{
					Title:         "Stress Management Techniques",
					Content:       "Practical strategies for managing stress and maintaining good mental health.",
					Type:          models.LessonVideo,
					VideoURL:      strPtr("https://www.youtube.com/watch?v=hnpQrMqDoqE"),
					Order:         3,
					EstimatedTime: 35,
				},
			},
		},
	}
}
