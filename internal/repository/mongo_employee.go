package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"payroll-directory/internal/database"
	"payroll-directory/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// employeeDoc keeps the field names of the existing employees collection.
type employeeDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	EmployeeID     string             `bson:"employee_id"`
	FirstName      string             `bson:"first_name"`
	LastName       string             `bson:"last_name"`
	Email          string             `bson:"email"`
	Phone          string             `bson:"phone"`
	Department     string             `bson:"department"`
	Designation    string             `bson:"designation"`
	DateOfJoining  time.Time          `bson:"date_of_joining"`
	EmploymentType string             `bson:"employment_type"`
	Location       string             `bson:"location"`
}

func newEmployeeDoc(e *models.Employee) employeeDoc {
	return employeeDoc{
		EmployeeID:     e.EmployeeID,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		Email:          e.Email,
		Phone:          e.Phone,
		Department:     e.Department,
		Designation:    e.Designation,
		DateOfJoining:  e.DateOfJoining,
		EmploymentType: e.EmploymentType,
		Location:       e.Location,
	}
}

func (d *employeeDoc) toModel() models.Employee {
	return models.Employee{
		ID:             d.ID.Hex(),
		EmployeeID:     d.EmployeeID,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Email:          d.Email,
		Phone:          d.Phone,
		Department:     d.Department,
		Designation:    d.Designation,
		DateOfJoining:  d.DateOfJoining.UTC(),
		EmploymentType: d.EmploymentType,
		Location:       d.Location,
		CreatedAt:      d.ID.Timestamp(),
	}
}

type MongoEmployeeRepository struct {
	coll *mongo.Collection
}

func NewMongoEmployeeRepository(db *mongo.Database) *MongoEmployeeRepository {
	return &MongoEmployeeRepository{coll: db.Collection(database.EmployeesCollection)}
}

func (r *MongoEmployeeRepository) Create(ctx context.Context, e *models.Employee) error {
	res, err := r.coll.InsertOne(ctx, newEmployeeDoc(e))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("create employee %q: %w", e.EmployeeID, ErrDuplicate)
		}
		return fmt.Errorf("create employee: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		e.ID = oid.Hex()
		e.CreatedAt = oid.Timestamp()
	}
	return nil
}

func (r *MongoEmployeeRepository) FindByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error) {
	var doc employeeDoc
	if err := r.coll.FindOne(ctx, bson.M{"employee_id": employeeID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	emp := doc.toModel()
	return &emp, nil
}

func (r *MongoEmployeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	return r.Search(ctx, EmployeeFilter{})
}

func (r *MongoEmployeeRepository) Search(ctx context.Context, f EmployeeFilter) ([]models.Employee, error) {
	filter := bson.M{}
	if f.FirstName != "" {
		filter["first_name"] = containsRegex(f.FirstName)
	}
	if f.LastName != "" {
		filter["last_name"] = containsRegex(f.LastName)
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("search employees: %w", err)
	}
	var docs []employeeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("search employees: %w", err)
	}

	employees := make([]models.Employee, 0, len(docs))
	for i := range docs {
		employees = append(employees, docs[i].toModel())
	}
	return employees, nil
}

func (r *MongoEmployeeRepository) Update(ctx context.Context, e *models.Employee) error {
	doc := newEmployeeDoc(e)
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"employee_id": e.EmployeeID},
		bson.M{"$set": bson.M{
			"first_name":      doc.FirstName,
			"last_name":       doc.LastName,
			"email":           doc.Email,
			"phone":           doc.Phone,
			"department":      doc.Department,
			"designation":     doc.Designation,
			"date_of_joining": doc.DateOfJoining,
			"employment_type": doc.EmploymentType,
			"location":        doc.Location,
		}},
	)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoEmployeeRepository) Delete(ctx context.Context, employeeID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"employee_id": employeeID})
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// containsRegex matches values containing s, ignoring case. s is matched
// literally.
func containsRegex(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}
