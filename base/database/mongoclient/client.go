package mongoclient

import (
	"context"
	"crypto/tls"
	"runtime"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/x-xyz/settlement/base/log"
)

const (
	socketTimeout  = 60 * time.Second
	connectTimeout = 10 * time.Second
)

// Client wraps mongo.Client with the database every repository works in
type Client struct {
	DbName string
	*mongo.Client
}

// Database returns the working database
func (c *Client) Database() *mongo.Database {
	return c.Client.Database(c.DbName)
}

// MustConnectMongoClient panics when the connection cannot be established
func MustConnectMongoClient(uri, authDBName, dbName string, ssl, majority bool, poolSizeMultiplier float64) *Client {
	cli, err := ConnectMongoClient(uri, authDBName, dbName, ssl, majority, poolSizeMultiplier)
	if err != nil {
		log.Log().WithFields(log.Fields{"dbName": dbName, "err": err}).Panic("fail to dial Mongo")
	}
	return cli
}

// poolSize spreads runtime.NumCPU()*multiplier connections over the hosts of the replica set
func poolSize(hosts int, multiplier float64) uint64 {
	if hosts < 1 {
		hosts = 1
	}
	total := int(float64(runtime.NumCPU()) * multiplier)
	if total < 1 {
		total = 1
	}
	return uint64((total + hosts - 1) / hosts)
}

// ConnectMongoClient connects and checks the database is reachable. Amounts
// typed decimal.Decimal are stored as Decimal128. With majority set, writes are
// acknowledged by a majority of the replica set, which multi document
// settlement transactions rely on.
func ConnectMongoClient(uri, authDBName, dbName string, ssl, majority bool, poolSizeMultiplier float64) (*Client, error) {
	logger := log.Log().WithField("dbName", dbName)
	conn, err := connstring.Parse(uri)
	if err != nil {
		logger.WithField("err", err).Error("fail to parse connstring")
		return nil, err
	}
	logger = logger.WithField("mongoHosts", conn.Hosts)

	size := poolSize(len(conn.Hosts), poolSizeMultiplier)
	opts := options.Client().
		ApplyURI(uri).
		SetRegistry(NewRegistry()).
		SetSocketTimeout(socketTimeout).
		SetConnectTimeout(connectTimeout).
		SetMinPoolSize(size / 4).
		SetMaxPoolSize(size).
		SetRetryWrites(true)

	if conn.Username != "" && conn.AuthSource == "" {
		opts.SetAuth(options.Credential{
			AuthMechanism:           conn.AuthMechanism,
			AuthMechanismProperties: conn.AuthMechanismProperties,
			Username:                conn.Username,
			Password:                conn.Password,
			PasswordSet:             conn.PasswordSet,
			AuthSource:              authDBName,
		})
	}
	if ssl {
		opts.SetTLSConfig(&tls.Config{})
	}
	if majority {
		opts.SetWriteConcern(writeconcern.New(writeconcern.WMajority()))
		opts.SetReadPreference(readpref.Primary())
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.WithField("err", err).Error("fail to connect mongo db")
		return nil, err
	}
	if _, err := client.Database(dbName).ListCollectionNames(ctx, bson.D{}); err != nil {
		logger.WithField("err", err).Error("fail to test mongo db")
		return nil, err
	}

	logger.WithField("poolSize", size).Info("mongo connected")
	return &Client{Client: client, DbName: dbName}, nil
}
