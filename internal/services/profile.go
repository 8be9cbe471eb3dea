package services

import (
  "context"
  "encoding/json"
  "fmt"
  "gorm.io/gorm"
  "github.com/google/uuid"
  "github.com/yungbote/ingredient-copilot-backend/internal/concerns"
  "github.com/yungbote/ingredient-copilot-backend/internal/logger"
  "github.com/yungbote/ingredient-copilot-backend/internal/normalization"
  "github.com/yungbote/ingredient-copilot-backend/internal/repos"
  "github.com/yungbote/ingredient-copilot-backend/internal/requestdata"
  "github.com/yungbote/ingredient-copilot-backend/internal/types"
)

type ProfileView struct {
  DisplayName       string      `json:"display_name"`
  HealthConcerns    []string    `json:"health_concerns"`
}

type ProfileService interface {
  Get(ctx context.Context) (*ProfileView, error)
  GetConcernsForUser(ctx context.Context, userID uuid.UUID) ([]string, error)
  Update(ctx context.Context, displayName string, healthConcerns []string) (*ProfileView, error)
}

type profileService struct {
  db          *gorm.DB
  log         *logger.Logger
  profileRepo repos.ProfileRepo
}

func NewProfileService(db *gorm.DB, log *logger.Logger, profileRepo repos.ProfileRepo) ProfileService {
  serviceLog := log.With("service", "ProfileService")
  return &profileService{db: db, log: serviceLog, profileRepo: profileRepo}
}

// Get returns the caller's profile. A missing row reads as an empty profile;
// the row is only created on first save.
func (ps *profileService) Get(ctx context.Context) (*ProfileView, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, fmt.Errorf("No authenticated user in context")
  }
  profiles, err := ps.profileRepo.GetByUserIDs(ctx, nil, []uuid.UUID{rd.UserID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load profile: %w", err)
  }
  if len(profiles) == 0 {
    return &ProfileView{DisplayName: "", HealthConcerns: []string{}}, nil
  }
  return profileToView(profiles[0]), nil
}

func (ps *profileService) GetConcernsForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
  if userID == uuid.Nil {
    return []string{}, nil
  }
  profiles, err := ps.profileRepo.GetByUserIDs(ctx, nil, []uuid.UUID{userID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load profile: %w", err)
  }
  if len(profiles) == 0 {
    return []string{}, nil
  }
  return decodeConcerns(profiles[0], ps.log), nil
}

func (ps *profileService) Update(ctx context.Context, displayName string, healthConcerns []string) (*ProfileView, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, fmt.Errorf("No authenticated user in context")
  }

  normalized := make([]string, 0, len(healthConcerns))
  for _, tag := range healthConcerns {
    normalized = append(normalized, normalization.ParseInputString(tag))
  }
  validTags := concerns.FilterValid(normalized)
  if len(validTags) != len(normalized) {
    ps.log.Warn("Dropped unknown health concern tags", "given", len(normalized), "kept", len(validTags))
  }

  encoded, err := json.Marshal(validTags)
  if err != nil {
    return nil, fmt.Errorf("Failed to encode health concerns: %w", err)
  }

  profile := &types.Profile{
    ID:             uuid.New(),
    UserID:         rd.UserID,
    DisplayName:    normalization.TrimInput(displayName),
    HealthConcerns: encoded,
  }
  if _, err := ps.profileRepo.Upsert(ctx, nil, profile); err != nil {
    return nil, fmt.Errorf("Failed to save profile: %w", err)
  }
  return profileToView(profile), nil
}

func profileToView(profile *types.Profile) *ProfileView {
  return &ProfileView{
    DisplayName:    profile.DisplayName,
    HealthConcerns: decodeConcerns(profile, nil),
  }
}

func decodeConcerns(profile *types.Profile, log *logger.Logger) []string {
  if len(profile.HealthConcerns) == 0 {
    return []string{}
  }
  var tags []string
  if err := json.Unmarshal(profile.HealthConcerns, &tags); err != nil {
    if log != nil {
      log.Warn("Failed to decode stored health concerns", "error", err)
    }
    return []string{}
  }
  if tags == nil {
    return []string{}
  }
  return tags
}
